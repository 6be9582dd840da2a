package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend identifies a storage sink implementation
type Backend string

const (
	BackendLocal Backend = "local"
	BackendS3    Backend = "s3"
)

// Config holds all configuration options for the CourtListener scraper
type Config struct {
	// API connection settings
	API APIConfig `yaml:"api" json:"api"`

	// Rate limiting and retry configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Fetch loop settings
	Fetch FetchConfig `yaml:"fetch" json:"fetch"`

	// Storage sink settings
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Checkpoint persistence settings
	Checkpoint CheckpointConfig `yaml:"checkpoint" json:"checkpoint"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds CourtListener API settings
type APIConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	Token          string        `yaml:"token" json:"token"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// RateLimitConfig holds request budget and retry configuration
type RateLimitConfig struct {
	RequestsPerDay int           `yaml:"requests_per_day" json:"requests_per_day"`
	MaxRetries     int           `yaml:"max_retries" json:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" json:"retry_base_delay"`
	RetryMaxDelay  time.Duration `yaml:"retry_max_delay" json:"retry_max_delay"`
}

// FetchConfig holds fetch loop settings
type FetchConfig struct {
	// BatchPages is how many pages accumulate into one output file.
	// 1 means one file per page and a checkpoint advance after every page.
	BatchPages int `yaml:"batch_pages" json:"batch_pages"`
}

// StorageConfig selects and configures the storage sink
type StorageConfig struct {
	Backend   Backend  `yaml:"backend" json:"backend"`
	OutputDir string   `yaml:"output_dir" json:"output_dir"`
	S3        S3Config `yaml:"s3" json:"s3"`
}

// S3Config holds object storage settings for the remote sink
type S3Config struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	Bucket    string `yaml:"bucket" json:"bucket"`
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix"`
	AccessKey string `yaml:"access_key" json:"access_key"`
	SecretKey string `yaml:"secret_key" json:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" json:"use_ssl"`
}

// CheckpointConfig holds checkpoint persistence settings
type CheckpointConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	// Dir, when set, adds a per-job log file destination under this directory
	Dir string `yaml:"dir" json:"dir"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://www.courtlistener.com/api/rest/v4/",
			UserAgent:      "clscraper/1.0",
			RequestTimeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			// CourtListener restricts authenticated clients to 5000 requests per day
			RequestsPerDay: 5000,
			MaxRetries:     5,
			RetryBaseDelay: 5 * time.Second,
			RetryMaxDelay:  2 * time.Minute,
		},
		Fetch: FetchConfig{
			BatchPages: 1,
		},
		Storage: StorageConfig{
			Backend:   BackendLocal,
			OutputDir: "./data",
		},
		Checkpoint: CheckpointConfig{
			Dir: "./checkpoints",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if token := os.Getenv("CLSCRAPER_API_TOKEN"); token != "" {
		c.API.Token = token
	}
	if baseURL := os.Getenv("CLSCRAPER_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if rpd := os.Getenv("CLSCRAPER_REQUESTS_PER_DAY"); rpd != "" {
		var val int
		fmt.Sscanf(rpd, "%d", &val)
		if val > 0 {
			c.RateLimit.RequestsPerDay = val
		}
	}
	if backend := os.Getenv("CLSCRAPER_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = Backend(strings.ToLower(backend))
	}
	if outputDir := os.Getenv("CLSCRAPER_OUTPUT_DIR"); outputDir != "" {
		c.Storage.OutputDir = outputDir
	}
	if endpoint := os.Getenv("CLSCRAPER_S3_ENDPOINT"); endpoint != "" {
		c.Storage.S3.Endpoint = endpoint
	}
	if bucket := os.Getenv("CLSCRAPER_S3_BUCKET"); bucket != "" {
		c.Storage.S3.Bucket = bucket
	}
	if prefix := os.Getenv("CLSCRAPER_S3_KEY_PREFIX"); prefix != "" {
		c.Storage.S3.KeyPrefix = prefix
	}
	if accessKey := os.Getenv("CLSCRAPER_S3_ACCESS_KEY"); accessKey != "" {
		c.Storage.S3.AccessKey = accessKey
	}
	if secretKey := os.Getenv("CLSCRAPER_S3_SECRET_KEY"); secretKey != "" {
		c.Storage.S3.SecretKey = secretKey
	}
	if useSSL := os.Getenv("CLSCRAPER_S3_USE_SSL"); useSSL != "" {
		c.Storage.S3.UseSSL = strings.ToLower(useSSL) == "true"
	}
	if dir := os.Getenv("CLSCRAPER_CHECKPOINT_DIR"); dir != "" {
		c.Checkpoint.Dir = dir
	}
	if logLevel := os.Getenv("CLSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logDir := os.Getenv("CLSCRAPER_LOG_DIR"); logDir != "" {
		c.Logging.Dir = logDir
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".clscraper.yaml",
		".clscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "clscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "clscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".clscraper.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. Remote storage settings
// are verified here so a misconfigured run fails before any network call.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if c.API.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.RateLimit.RequestsPerDay <= 0 {
		errs = append(errs, errors.New("requests per day must be positive"))
	}
	if c.RateLimit.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}

	if c.Fetch.BatchPages < 1 {
		errs = append(errs, errors.New("batch pages must be at least 1"))
	}

	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.OutputDir == "" {
			errs = append(errs, errors.New("output directory is required for local storage"))
		}
	case BackendS3:
		if c.Storage.S3.Endpoint == "" {
			errs = append(errs, errors.New("S3 endpoint is required for s3 storage"))
		}
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("S3 bucket is required for s3 storage"))
		}
		if c.Storage.S3.AccessKey == "" || c.Storage.S3.SecretKey == "" {
			errs = append(errs, errors.New("S3 credentials are required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend: %q", c.Storage.Backend))
	}

	if c.Checkpoint.Dir == "" {
		errs = append(errs, errors.New("checkpoint directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["token"].(string); ok && token != "" {
		c.API.Token = token
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Storage.OutputDir = outputDir
	}
	if backend, ok := flags["storage"].(string); ok && backend != "" {
		c.Storage.Backend = Backend(strings.ToLower(backend))
	}
	if batchPages, ok := flags["batch-pages"].(int); ok && batchPages > 0 {
		c.Fetch.BatchPages = batchPages
	}
	if checkpointDir, ok := flags["checkpoint-dir"].(string); ok && checkpointDir != "" {
		c.Checkpoint.Dir = checkpointDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".clscraper.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
