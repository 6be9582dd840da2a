package courtlistener

import "encoding/json"

// Page is one API response unit: the raw records of a single page plus
// the link to the next page. An empty Next means pagination is exhausted.
type Page struct {
	Count   int               `json:"count,omitempty"`
	Next    string            `json:"next"`
	Results []json.RawMessage `json:"results"`
}

// Exhausted reports whether this is the last page
func (p *Page) Exhausted() bool {
	return p.Next == ""
}
