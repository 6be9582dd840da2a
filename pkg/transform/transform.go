// Package transform maps raw API records onto the normalized tabular
// schema of each endpoint. Specializations are pure: no I/O, no retries,
// so each is testable against fixed input/output pairs.
package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrSkipRecord marks a record that is missing required fields. The
// fetch loop drops and counts such records instead of failing the batch.
var ErrSkipRecord = errors.New("record missing required fields")

// Record is one normalized output row, aligned with its Spec's Columns
type Record []string

// Spec is an endpoint specialization: it declares the output schema and
// normalizes one raw JSON record into zero or more rows
type Spec interface {
	// Endpoint returns the API endpoint identifier this spec handles
	Endpoint() string
	// Columns returns the output column names, in order
	Columns() []string
	// Normalize converts one raw record into output rows. It returns
	// ErrSkipRecord when the record lacks required fields.
	Normalize(raw json.RawMessage) ([]Record, error)
}

var registry = map[string]Spec{}

func register(s Spec) {
	registry[s.Endpoint()] = s
}

// Lookup returns the specialization for an endpoint identifier
func Lookup(endpoint string) (Spec, error) {
	s, ok := registry[endpoint]
	if !ok {
		return nil, fmt.Errorf("no specialization registered for endpoint %q", endpoint)
	}
	return s, nil
}

// Endpoints lists the registered endpoint identifiers
func Endpoints() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// SanitizeName makes a value safe for use in file names by replacing
// every non-alphanumeric rune with an underscore
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// intField renders a JSON number-or-null as a string column value
func intField(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
