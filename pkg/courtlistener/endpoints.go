package courtlistener

import (
	"fmt"
	"net/url"
	"strings"
)

// BaseURL is the CourtListener REST API v4 root
const BaseURL = "https://www.courtlistener.com/api/rest/v4/"

// Endpoint identifiers served by the scraper
const (
	EndpointPositions   = "positions"
	EndpointEducation   = "education"
	EndpointDisclosures = "financial-disclosures"
	EndpointSearch      = "search"
)

// FirstPageURL builds the page-one URL for a plain list endpoint
func FirstPageURL(base, endpoint string) string {
	return fmt.Sprintf("%s%s/", strings.TrimSuffix(base, "/")+"/", endpoint)
}

// SearchURL builds the page-one URL for a per-judge docket search,
// scoping results to opinions authored by the given judge
func SearchURL(base, authorID string) string {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("author_id:%s", authorID))
	return fmt.Sprintf("%s?%s", FirstPageURL(base, EndpointSearch), q.Encode())
}
