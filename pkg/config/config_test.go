package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.API.BaseURL != "https://www.courtlistener.com/api/rest/v4/" {
		t.Errorf("Unexpected default base URL: %s", config.API.BaseURL)
	}
	if config.RateLimit.RequestsPerDay != 5000 {
		t.Errorf("Expected default requests per day to be 5000, got %d", config.RateLimit.RequestsPerDay)
	}
	if config.Fetch.BatchPages != 1 {
		t.Errorf("Expected default batch pages to be 1, got %d", config.Fetch.BatchPages)
	}
	if config.Storage.Backend != BackendLocal {
		t.Errorf("Expected default storage backend to be local, got %s", config.Storage.Backend)
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("CLSCRAPER_API_TOKEN", "test-token")
	os.Setenv("CLSCRAPER_REQUESTS_PER_DAY", "100")
	os.Setenv("CLSCRAPER_STORAGE_BACKEND", "s3")
	os.Setenv("CLSCRAPER_S3_BUCKET", "test-bucket")
	os.Setenv("CLSCRAPER_LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("CLSCRAPER_API_TOKEN")
		os.Unsetenv("CLSCRAPER_REQUESTS_PER_DAY")
		os.Unsetenv("CLSCRAPER_STORAGE_BACKEND")
		os.Unsetenv("CLSCRAPER_S3_BUCKET")
		os.Unsetenv("CLSCRAPER_LOG_LEVEL")
	}()

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if config.API.Token != "test-token" {
		t.Errorf("Expected token from env, got %q", config.API.Token)
	}
	if config.RateLimit.RequestsPerDay != 100 {
		t.Errorf("Expected 100 requests per day, got %d", config.RateLimit.RequestsPerDay)
	}
	if config.Storage.Backend != BackendS3 {
		t.Errorf("Expected s3 backend, got %s", config.Storage.Backend)
	}
	if config.Storage.S3.Bucket != "test-bucket" {
		t.Errorf("Expected bucket from env, got %q", config.Storage.S3.Bucket)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected debug log level, got %q", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
api:
  base_url: "https://example.test/api/"
rate_limit:
  requests_per_day: 250
fetch:
  batch_pages: 5
storage:
  backend: local
  output_dir: "/tmp/cl-data"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.API.BaseURL != "https://example.test/api/" {
		t.Errorf("Expected base URL from file, got %q", config.API.BaseURL)
	}
	if config.RateLimit.RequestsPerDay != 250 {
		t.Errorf("Expected 250 requests per day, got %d", config.RateLimit.RequestsPerDay)
	}
	if config.Fetch.BatchPages != 5 {
		t.Errorf("Expected 5 batch pages, got %d", config.Fetch.BatchPages)
	}
	if config.Storage.OutputDir != "/tmp/cl-data" {
		t.Errorf("Expected output dir from file, got %q", config.Storage.OutputDir)
	}
}

func TestValidate(t *testing.T) {
	t.Run("ValidDefaults", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.Validate(); err != nil {
			t.Errorf("Expected default config to validate: %v", err)
		}
	})

	t.Run("MissingS3Settings", func(t *testing.T) {
		config := DefaultConfig()
		config.Storage.Backend = BackendS3

		err := config.Validate()
		if err == nil {
			t.Fatal("Expected validation to fail for s3 backend without settings")
		}
		if !strings.Contains(err.Error(), "S3 endpoint is required") {
			t.Errorf("Expected endpoint error, got: %v", err)
		}
		if !strings.Contains(err.Error(), "S3 credentials are required") {
			t.Errorf("Expected credentials error, got: %v", err)
		}
	})

	t.Run("CompleteS3Settings", func(t *testing.T) {
		config := DefaultConfig()
		config.Storage.Backend = BackendS3
		config.Storage.S3.Endpoint = "s3.amazonaws.com"
		config.Storage.S3.Bucket = "bucket"
		config.Storage.S3.AccessKey = "key"
		config.Storage.S3.SecretKey = "secret"

		if err := config.Validate(); err != nil {
			t.Errorf("Expected complete s3 config to validate: %v", err)
		}
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		config := DefaultConfig()
		config.Storage.Backend = "ftp"
		if err := config.Validate(); err == nil {
			t.Error("Expected validation to fail for unknown backend")
		}
	})

	t.Run("InvalidBatchPages", func(t *testing.T) {
		config := DefaultConfig()
		config.Fetch.BatchPages = 0
		if err := config.Validate(); err == nil {
			t.Error("Expected validation to fail for zero batch pages")
		}
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		config := DefaultConfig()
		config.Logging.Level = "verbose"
		if err := config.Validate(); err == nil {
			t.Error("Expected validation to fail for invalid log level")
		}
	})
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	config.MergeCommandLineFlags(map[string]interface{}{
		"token":       "flag-token",
		"output":      "/tmp/out",
		"storage":     "s3",
		"batch-pages": 10,
	})

	if config.API.Token != "flag-token" {
		t.Errorf("Expected token from flags, got %q", config.API.Token)
	}
	if config.Storage.OutputDir != "/tmp/out" {
		t.Errorf("Expected output dir from flags, got %q", config.Storage.OutputDir)
	}
	if config.Storage.Backend != BackendS3 {
		t.Errorf("Expected s3 backend from flags, got %s", config.Storage.Backend)
	}
	if config.Fetch.BatchPages != 10 {
		t.Errorf("Expected 10 batch pages from flags, got %d", config.Fetch.BatchPages)
	}
}
