package transform

import "encoding/json"

func init() {
	register(disclosuresSpec{})
}

type disclosureRecord struct {
	ID               *int64 `json:"id"`
	Person           string `json:"person"`
	Year             string `json:"year"`
	ReportType       *int64 `json:"report_type"`
	PageCount        *int64 `json:"page_count"`
	HasBeenExtracted bool   `json:"has_been_extracted"`
}

// disclosuresSpec normalizes financial disclosure filings into one row
// each
type disclosuresSpec struct{}

func (disclosuresSpec) Endpoint() string { return "financial-disclosures" }

func (disclosuresSpec) Columns() []string {
	return []string{"id", "person", "year", "report_type", "page_count", "has_been_extracted"}
}

func (disclosuresSpec) Normalize(raw json.RawMessage) ([]Record, error) {
	var rec disclosureRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, ErrSkipRecord
	}
	if rec.ID == nil {
		return nil, ErrSkipRecord
	}
	extracted := "false"
	if rec.HasBeenExtracted {
		extracted = "true"
	}
	return []Record{{
		intField(rec.ID), rec.Person, rec.Year,
		intField(rec.ReportType), intField(rec.PageCount), extracted,
	}}, nil
}
