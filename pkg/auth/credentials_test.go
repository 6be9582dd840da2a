package auth

import (
	"errors"
	"os"
	"testing"
)

func TestManagerStoreAndRetrieve(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	if err := manager.Store("test-token"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	token, err := manager.Retrieve()
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if token != "test-token" {
		t.Errorf("Expected test-token, got %q", token)
	}
	if !manager.Exists() {
		t.Error("Expected Exists to report a stored token")
	}
}

func TestManagerStoreEmptyToken(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	if err := manager.Store(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestManagerFallback(t *testing.T) {
	primary := NewMockStore()
	primary.SetUnavailable(true)
	secondary := NewMockStore()

	manager := NewManagerWithStores(primary, secondary)

	if err := manager.Store("fallback-token"); err != nil {
		t.Fatalf("Store should fall back to the secondary store: %v", err)
	}

	token, err := manager.Retrieve()
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if token != "fallback-token" {
		t.Errorf("Expected fallback-token, got %q", token)
	}
}

func TestManagerRetrieveNotFound(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	if _, err := manager.Retrieve(); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
}

func TestManagerDelete(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	if err := manager.Store("test-token"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := manager.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if manager.Exists() {
		t.Error("Expected token removed after Delete")
	}
	if err := manager.Delete(); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound for second delete, got %v", err)
	}
}

func TestManagerAllStoresUnavailable(t *testing.T) {
	store := NewMockStore()
	store.SetUnavailable(true)
	manager := NewManagerWithStores(store)

	if err := manager.Store("token"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	os.Setenv(envTokenVar, "env-token")
	defer os.Unsetenv(envTokenVar)

	token, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if token != "env-token" {
		t.Errorf("Expected env-token, got %q", token)
	}
	if !store.Exists() {
		t.Error("Expected Exists to report the env token")
	}

	if err := store.Store("other"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Environment store must be read-only, got %v", err)
	}
	if err := store.Delete(); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Environment store must be read-only, got %v", err)
	}

	os.Unsetenv(envTokenVar)
	if _, err := store.Retrieve(); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound with unset env, got %v", err)
	}
}

func TestManagerPrefersEarlierStore(t *testing.T) {
	first := NewMockStore()
	second := NewMockStore()
	_ = first.Store("first-token")
	_ = second.Store("second-token")

	manager := NewManagerWithStores(first, second)

	token, err := manager.Retrieve()
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if token != "first-token" {
		t.Errorf("Expected the first store to win, got %q", token)
	}
}
