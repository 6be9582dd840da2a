// Package auth stores the CourtListener API token, preferring the system
// keychain and falling back to the environment for headless runs.
package auth

import (
	"errors"
)

var (
	// ErrTokenNotFound indicates no stored token was found
	ErrTokenNotFound = errors.New("API token not found")

	// ErrStoreUnavailable indicates the storage backend cannot be used
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// ErrInvalidToken indicates an empty or malformed token
	ErrInvalidToken = errors.New("invalid API token")
)

// TokenStore is the interface for storing and retrieving the API token
type TokenStore interface {
	// Store saves the token
	Store(token string) error

	// Retrieve gets the stored token
	Retrieve() (string, error)

	// Delete removes the stored token
	Delete() error

	// Exists checks if a token is stored
	Exists() bool
}

// Manager handles token storage with fallback mechanisms
type Manager struct {
	stores []TokenStore
}

// NewManager creates a token manager probing the keychain first and the
// environment second
func NewManager() (*Manager, error) {
	var stores []TokenStore

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}
	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager with explicit stores (for tests)
func NewManagerWithStores(stores ...TokenStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the token to the first store that accepts it
func (m *Manager) Store(token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(token); err == nil {
			return nil
		} else if !errors.Is(err, ErrStoreUnavailable) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return ErrStoreUnavailable
}

// Retrieve returns the token from the first store that has one
func (m *Manager) Retrieve() (string, error) {
	for _, store := range m.stores {
		if token, err := store.Retrieve(); err == nil {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

// Delete removes the token from every store that holds it
func (m *Manager) Delete() error {
	deleted := false
	for _, store := range m.stores {
		if store.Exists() {
			if err := store.Delete(); err == nil {
				deleted = true
			}
		}
	}

	if !deleted {
		return ErrTokenNotFound
	}
	return nil
}

// Exists checks whether any store holds a token
func (m *Manager) Exists() bool {
	for _, store := range m.stores {
		if store.Exists() {
			return true
		}
	}
	return false
}
