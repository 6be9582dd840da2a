package transform

import "encoding/json"

func init() {
	register(docketsSpec{})
}

// docketRecord is one search hit from the per-judge docket query
type docketRecord struct {
	AbsoluteURL  string `json:"absolute_url"`
	CaseName     string `json:"caseName"`
	Court        string `json:"court"`
	DateFiled    string `json:"dateFiled"`
	DocketNumber string `json:"docketNumber"`
	Judge        string `json:"judge"`
}

// docketsSpec normalizes docket search hits. It serves the "search"
// endpoint, which the scraper runs sub-keyed by judge (author_id).
type docketsSpec struct{}

func (docketsSpec) Endpoint() string { return "search" }

func (docketsSpec) Columns() []string {
	return []string{"case_name", "court", "date_filed", "docket_number", "judge", "absolute_url"}
}

func (docketsSpec) Normalize(raw json.RawMessage) ([]Record, error) {
	var rec docketRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, ErrSkipRecord
	}
	if rec.CaseName == "" && rec.AbsoluteURL == "" {
		return nil, ErrSkipRecord
	}
	return []Record{{
		rec.CaseName, rec.Court, rec.DateFiled,
		rec.DocketNumber, rec.Judge, rec.AbsoluteURL,
	}}, nil
}

// ExtractJudgeName pulls the first non-empty judge field out of a run of
// raw search hits, for use in per-judge output names. It returns
// "name_not_found" when no record names a judge, already sanitized for
// file names.
func ExtractJudgeName(raws []json.RawMessage) string {
	for _, raw := range raws {
		var rec docketRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.Judge != "" {
			return SanitizeName(rec.Judge)
		}
	}
	return "name_not_found"
}
