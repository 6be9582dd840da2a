package transform

import "encoding/json"

func init() {
	register(educationSpec{})
}

type educationRecord struct {
	ID          *int64 `json:"id"`
	Person      string `json:"person"`
	School      school `json:"school"`
	DegreeLevel string `json:"degree_level"`
	DegreeYear  *int64 `json:"degree_year"`
}

type school struct {
	Name string `json:"name"`
}

// educationSpec normalizes education records into one row each
type educationSpec struct{}

func (educationSpec) Endpoint() string { return "education" }

func (educationSpec) Columns() []string {
	return []string{"id", "person", "school_name", "degree_level", "degree_year"}
}

func (educationSpec) Normalize(raw json.RawMessage) ([]Record, error) {
	var rec educationRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, ErrSkipRecord
	}
	if rec.ID == nil {
		return nil, ErrSkipRecord
	}
	return []Record{{
		intField(rec.ID), rec.Person, rec.School.Name,
		rec.DegreeLevel, intField(rec.DegreeYear),
	}}, nil
}
