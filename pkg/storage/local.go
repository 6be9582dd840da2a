package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"clscraper/pkg/errors"
	"clscraper/pkg/logger"
)

// LocalSink writes batches as CSV files under a base directory, one
// subdirectory per endpoint
type LocalSink struct {
	baseDir string
	logger  logger.Logger
}

// NewLocalSink creates a local filesystem sink rooted at baseDir
func NewLocalSink(baseDir string, log logger.Logger) (*LocalSink, error) {
	if baseDir == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "output directory is required")
	}
	if log == nil {
		log = logger.GetLogger()
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &LocalSink{baseDir: baseDir, logger: log}, nil
}

// Write persists the batch to <baseDir>/<endpoint>/<name>. The file is
// written to a temp path and renamed into place, so a crash never leaves
// a half-written batch, and an existing file for the same page range is
// overwritten.
func (s *LocalSink) Write(ctx context.Context, batch *Batch, hint NamingHint) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := encodeCSV(batch)
	if err != nil {
		return "", errors.Newf(errors.ErrorTypeStorage, "encode batch: %v", err)
	}

	dir := filepath.Join(s.baseDir, hint.Endpoint)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Newf(errors.ErrorTypeStorage, "create data directory: %v", err)
	}

	path := filepath.Join(dir, hint.FileName())
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		os.Remove(tempPath)
		return "", errors.Newf(errors.ErrorTypeStorage, "write batch file: %v", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", errors.Newf(errors.ErrorTypeStorage, "rename batch file: %v", err)
	}

	s.logger.InfoWithFields("batch saved", map[string]interface{}{
		"path":    path,
		"records": len(batch.Rows),
	})

	return path, nil
}
