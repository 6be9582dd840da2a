package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"clscraper/pkg/config"
	"clscraper/pkg/errors"
	"clscraper/pkg/logger"
)

// Batch is the unit handed to a sink: the normalized records extracted
// from one or more consecutive pages, in page order.
type Batch struct {
	Columns []string
	Rows    [][]string
}

// NamingHint carries everything a sink needs to compute the output name
type NamingHint struct {
	Endpoint  string
	SubKey    string
	Label     string // optional human-readable label (e.g. sanitized judge name)
	StartPage int
	EndPage   int // inclusive
}

// FileName computes the batch file name following the
// <endpoint>_pages_<start>_to_<end>.csv convention. Sub-keyed jobs with
// a label (per-judge docket pulls) prefix the label and sub-key instead
// of the bare endpoint so each judge's batches stay distinguishable.
func (h NamingHint) FileName() string {
	base := h.Endpoint
	if h.SubKey != "" && h.Label != "" {
		base = fmt.Sprintf("%s_%s", h.Label, h.SubKey)
	}
	return fmt.Sprintf("%s_pages_%d_to_%d.csv", base, h.StartPage, h.EndPage)
}

// Sink abstracts "write a batch of records" over storage backends
type Sink interface {
	// Write persists the batch and returns the location it landed at.
	// The write must be confirmed before Write returns; callers advance
	// the checkpoint only on success.
	Write(ctx context.Context, batch *Batch, hint NamingHint) (string, error)
}

// NewSink builds the sink selected by the storage configuration
func NewSink(cfg *config.StorageConfig, log logger.Logger) (Sink, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return NewLocalSink(cfg.OutputDir, log)
	case config.BackendS3:
		return NewS3Sink(&cfg.S3, log)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown storage backend: %q", cfg.Backend)
	}
}

// encodeCSV renders a batch as CSV bytes: header row first, then record
// rows in order
func encodeCSV(batch *Batch) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(batch.Columns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range batch.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
