package auth

import "sync"

// MockStore implements TokenStore in memory, for testing
type MockStore struct {
	mu          sync.RWMutex
	token       string
	failStore   bool
	unavailable bool
}

// NewMockStore creates a new in-memory token store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// SetUnavailable makes every operation report ErrStoreUnavailable
func (m *MockStore) SetUnavailable(unavailable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = unavailable
}

// Store saves the token in memory
func (m *MockStore) Store(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return ErrStoreUnavailable
	}
	if token == "" {
		return ErrInvalidToken
	}
	m.token = token
	return nil
}

// Retrieve gets the stored token
func (m *MockStore) Retrieve() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.unavailable {
		return "", ErrStoreUnavailable
	}
	if m.token == "" {
		return "", ErrTokenNotFound
	}
	return m.token, nil
}

// Delete removes the stored token
func (m *MockStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return ErrStoreUnavailable
	}
	if m.token == "" {
		return ErrTokenNotFound
	}
	m.token = ""
	return nil
}

// Exists checks if a token is stored
func (m *MockStore) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.unavailable && m.token != ""
}
