package transform

import "encoding/json"

func init() {
	register(positionsSpec{})
}

// positionRecord is the subset of a CourtListener position we keep
type positionRecord struct {
	ID               *int64 `json:"id"`
	Person           string `json:"person"`
	Court            string `json:"court"`
	OrganizationName string `json:"organization_name"`
	PositionType     string `json:"position_type"`
	JobTitle         string `json:"job_title"`
	DateStart        string `json:"date_start"`
	DateTermination  string `json:"date_termination"`
}

// positionsEnvelope covers both shapes the API serves: a bare position,
// or a person carrying nested position sub-objects
type positionsEnvelope struct {
	positionRecord
	NameFull  string           `json:"name_full"`
	Positions []positionRecord `json:"positions"`
}

// positionsSpec flattens judicial positions into standalone rows, one
// row per position even when positions arrive nested under a person
type positionsSpec struct{}

func (positionsSpec) Endpoint() string { return "positions" }

func (positionsSpec) Columns() []string {
	return []string{
		"id", "person", "court", "organization_name",
		"position_type", "job_title", "date_start", "date_termination",
	}
}

func (positionsSpec) Normalize(raw json.RawMessage) ([]Record, error) {
	var env positionsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrSkipRecord
	}

	if len(env.Positions) > 0 {
		rows := make([]Record, 0, len(env.Positions))
		for _, p := range env.Positions {
			if p.ID == nil {
				continue
			}
			if p.Person == "" {
				p.Person = env.NameFull
			}
			rows = append(rows, positionRow(p))
		}
		if len(rows) == 0 {
			return nil, ErrSkipRecord
		}
		return rows, nil
	}

	if env.ID == nil {
		return nil, ErrSkipRecord
	}
	return []Record{positionRow(env.positionRecord)}, nil
}

func positionRow(p positionRecord) Record {
	return Record{
		intField(p.ID), p.Person, p.Court, p.OrganizationName,
		p.PositionType, p.JobTitle, p.DateStart, p.DateTermination,
	}
}
