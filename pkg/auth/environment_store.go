package auth

import "os"

// envTokenVar is the environment variable holding the API token
const envTokenVar = "CLSCRAPER_API_TOKEN"

// EnvironmentStore implements TokenStore using environment variables,
// the usual path for headless and CI runs
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based token store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(token string) error {
	return ErrStoreUnavailable
}

// Retrieve gets the token from the environment
func (e *EnvironmentStore) Retrieve() (string, error) {
	token := os.Getenv(envTokenVar)
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if the environment variable is set
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv(envTokenVar) != ""
}
