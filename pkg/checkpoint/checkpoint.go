package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clscraper/pkg/logger"
)

// Checkpoint records fetch progress for one scraping job
type Checkpoint struct {
	Endpoint     string    `json:"endpoint"`
	SubKey       string    `json:"sub_key,omitempty"`
	LastURL      string    `json:"last_url"`
	PagesFetched int       `json:"pages_fetched"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// Manager handles checkpoint operations for one job
type Manager struct {
	endpoint       string
	subKey         string
	checkpointPath string
	logger         logger.Logger
}

// FileKey returns the stable on-disk identifier for an (endpoint, sub-key) pair
func FileKey(endpoint, subKey string) string {
	if subKey == "" {
		return endpoint
	}
	return fmt.Sprintf("%s_%s", endpoint, subKey)
}

// NewManager creates a checkpoint manager for the given job under dir
func NewManager(dir, endpoint, subKey string, log logger.Logger) (*Manager, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.checkpoint.json", FileKey(endpoint, subKey)))

	return &Manager{
		endpoint:       endpoint,
		subKey:         subKey,
		checkpointPath: path,
		logger:         log,
	}, nil
}

// Read returns the job's checkpoint. A job without prior progress gets a
// fresh checkpoint with an empty last URL and a zero page count.
func (m *Manager) Read() (*Checkpoint, error) {
	file, err := os.Open(m.checkpointPath)
	if err != nil {
		if os.IsNotExist(err) {
			now := time.Now()
			return &Checkpoint{
				Endpoint:  m.endpoint,
				SubKey:    m.subKey,
				CreatedAt: now,
				UpdatedAt: now,
				Version:   1,
			}, nil
		}
		return nil, fmt.Errorf("failed to open checkpoint file: %w", err)
	}
	defer file.Close()

	var cp Checkpoint
	if err := json.NewDecoder(file).Decode(&cp); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}

	m.logger.DebugWithFields("checkpoint loaded", map[string]interface{}{
		"endpoint":      cp.Endpoint,
		"pages_fetched": cp.PagesFetched,
		"last_url":      cp.LastURL,
	})

	return &cp, nil
}

// Advance records that pagesDelta more pages were persisted and that the
// next fetch should start from newLastURL. The update is durable before
// Advance returns.
func (m *Manager) Advance(cp *Checkpoint, newLastURL string, pagesDelta int) error {
	cp.LastURL = newLastURL
	cp.PagesFetched += pagesDelta
	return m.save(cp)
}

// save writes the checkpoint to disk atomically
func (m *Manager) save(cp *Checkpoint) error {
	cp.UpdatedAt = time.Now()

	tempPath := m.checkpointPath + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary checkpoint file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cp); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync checkpoint file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close checkpoint file: %w", err)
	}

	if err := os.Rename(tempPath, m.checkpointPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}

	m.logger.DebugWithFields("checkpoint saved", map[string]interface{}{
		"endpoint":      cp.Endpoint,
		"pages_fetched": cp.PagesFetched,
		"last_url":      cp.LastURL,
	})

	return nil
}

// Reset removes the checkpoint file so the next run starts from page one.
// A missing file is not an error.
func (m *Manager) Reset() error {
	if err := os.Remove(m.checkpointPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to reset checkpoint: %w", err)
	}

	m.logger.InfoWithFields("checkpoint reset", map[string]interface{}{
		"endpoint": m.endpoint,
		"sub_key":  m.subKey,
	})
	return nil
}

// Exists checks if a checkpoint file exists
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.checkpointPath)
	return err == nil
}

// Path returns the checkpoint file location
func (m *Manager) Path() string {
	return m.checkpointPath
}
