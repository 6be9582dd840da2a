package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clscraper/pkg/config"
)

func TestNamingHintFileName(t *testing.T) {
	tests := []struct {
		name     string
		hint     NamingHint
		expected string
	}{
		{
			name:     "EndpointRange",
			hint:     NamingHint{Endpoint: "positions", StartPage: 1, EndPage: 5},
			expected: "positions_pages_1_to_5.csv",
		},
		{
			name:     "SinglePage",
			hint:     NamingHint{Endpoint: "education", StartPage: 3, EndPage: 3},
			expected: "education_pages_3_to_3.csv",
		},
		{
			name:     "JudgeDockets",
			hint:     NamingHint{Endpoint: "search", SubKey: "2581", Label: "john_marshall", StartPage: 1, EndPage: 2},
			expected: "john_marshall_2581_pages_1_to_2.csv",
		},
		{
			name:     "SubKeyWithoutLabel",
			hint:     NamingHint{Endpoint: "search", SubKey: "2581", StartPage: 1, EndPage: 1},
			expected: "search_pages_1_to_1.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hint.FileName(); got != tt.expected {
				t.Errorf("FileName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLocalSinkWrite(t *testing.T) {
	dir := t.TempDir()

	sink, err := NewLocalSink(dir, nil)
	if err != nil {
		t.Fatalf("NewLocalSink failed: %v", err)
	}

	batch := &Batch{
		Columns: []string{"id", "judge", "court"},
		Rows: [][]string{
			{"1", "Marshall", "scotus"},
			{"2", "Story", "scotus"},
		},
	}
	hint := NamingHint{Endpoint: "positions", StartPage: 1, EndPage: 1}

	path, err := sink.Write(context.Background(), batch, hint)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := filepath.Join(dir, "positions", "positions_pages_1_to_1.csv")
	if path != expected {
		t.Errorf("Expected path %q, got %q", expected, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read batch file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 csv lines, got %d", len(lines))
	}
	if lines[0] != "id,judge,court" {
		t.Errorf("Unexpected header row: %q", lines[0])
	}
	if lines[1] != "1,Marshall,scotus" {
		t.Errorf("Unexpected first record: %q", lines[1])
	}
}

func TestLocalSinkWriteEmptyBatch(t *testing.T) {
	dir := t.TempDir()

	sink, err := NewLocalSink(dir, nil)
	if err != nil {
		t.Fatalf("NewLocalSink failed: %v", err)
	}

	batch := &Batch{Columns: []string{"id", "judge"}}
	hint := NamingHint{Endpoint: "education", StartPage: 4, EndPage: 4}

	path, err := sink.Write(context.Background(), batch, hint)
	if err != nil {
		t.Fatalf("Write failed for empty batch: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read batch file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "id,judge" {
		t.Errorf("Expected header-only file, got %q", string(data))
	}
}

func TestLocalSinkOverwrite(t *testing.T) {
	dir := t.TempDir()

	sink, err := NewLocalSink(dir, nil)
	if err != nil {
		t.Fatalf("NewLocalSink failed: %v", err)
	}

	hint := NamingHint{Endpoint: "positions", StartPage: 2, EndPage: 2}

	first := &Batch{Columns: []string{"id"}, Rows: [][]string{{"old"}}}
	if _, err := sink.Write(context.Background(), first, hint); err != nil {
		t.Fatalf("First write failed: %v", err)
	}

	second := &Batch{Columns: []string{"id"}, Rows: [][]string{{"new"}}}
	path, err := sink.Write(context.Background(), second, hint)
	if err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "new") || strings.Contains(string(data), "old") {
		t.Errorf("Expected rewrite to replace prior content, got %q", string(data))
	}
}

func TestLocalSinkCancelledContext(t *testing.T) {
	dir := t.TempDir()

	sink, err := NewLocalSink(dir, nil)
	if err != nil {
		t.Fatalf("NewLocalSink failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := &Batch{Columns: []string{"id"}, Rows: [][]string{{"1"}}}
	hint := NamingHint{Endpoint: "positions", StartPage: 1, EndPage: 1}

	if _, err := sink.Write(ctx, batch, hint); err == nil {
		t.Error("Expected write to fail with cancelled context")
	}
}

func TestNewLocalSinkRequiresDir(t *testing.T) {
	if _, err := NewLocalSink("", nil); err == nil {
		t.Error("Expected error for empty output directory")
	}
}

func TestNewSink(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		cfg := &config.StorageConfig{Backend: config.BackendLocal, OutputDir: t.TempDir()}
		sink, err := NewSink(cfg, nil)
		if err != nil {
			t.Fatalf("NewSink failed: %v", err)
		}
		if _, ok := sink.(*LocalSink); !ok {
			t.Errorf("Expected *LocalSink, got %T", sink)
		}
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		cfg := &config.StorageConfig{Backend: "ftp"}
		if _, err := NewSink(cfg, nil); err == nil {
			t.Error("Expected error for unknown backend")
		}
	})

	t.Run("S3MissingSettings", func(t *testing.T) {
		cfg := &config.StorageConfig{Backend: config.BackendS3}
		if _, err := NewSink(cfg, nil); err == nil {
			t.Error("Expected error for s3 backend without settings")
		}
	})
}
