package courtlistener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clscraper/pkg/config"
	"clscraper/pkg/errors"
)

func testAPIConfig(baseURL string) *config.APIConfig {
	return &config.APIConfig{
		BaseURL:        baseURL,
		Token:          "test-token",
		UserAgent:      "clscraper-test",
		RequestTimeout: 5 * time.Second,
	}
}

func TestGetPage(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 3,
			"next": "https://example.test/positions/?page=2",
			"results": [{"id": 1}, {"id": 2}]
		}`))
	}))
	defer server.Close()

	client := NewClient(testAPIConfig(server.URL+"/"), nil)

	page, err := client.GetPage(context.Background(), server.URL+"/positions/")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}

	if gotAuth != "Token test-token" {
		t.Errorf("Expected token auth header, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Expected json accept header, got %q", gotAccept)
	}
	if page.Count != 3 {
		t.Errorf("Expected count 3, got %d", page.Count)
	}
	if len(page.Results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(page.Results))
	}
	if page.Exhausted() {
		t.Error("Page with a next link should not be exhausted")
	}
}

func TestGetPageLastPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"next": null, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(testAPIConfig(server.URL+"/"), nil)

	page, err := client.GetPage(context.Background(), server.URL+"/positions/")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if !page.Exhausted() {
		t.Error("Page with null next should be exhausted")
	}
}

func TestGetPageStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType errors.ErrorType
	}{
		{"RateLimited", http.StatusTooManyRequests, errors.ErrorTypeRateLimit},
		{"ServerError", http.StatusInternalServerError, errors.ErrorTypeServerError},
		{"BadGateway", http.StatusBadGateway, errors.ErrorTypeServerError},
		{"NotFound", http.StatusNotFound, errors.ErrorTypePermanent},
		{"Unauthorized", http.StatusUnauthorized, errors.ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(testAPIConfig(server.URL+"/"), nil)

			_, err := client.GetPage(context.Background(), server.URL+"/positions/")
			if err == nil {
				t.Fatalf("Expected error for status %d", tt.status)
			}

			apiErr, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("Expected *errors.Error, got %T", err)
			}
			if apiErr.Type != tt.wantType {
				t.Errorf("Expected error type %s, got %s", tt.wantType, apiErr.Type)
			}
			if apiErr.Code != tt.status {
				t.Errorf("Expected code %d, got %d", tt.status, apiErr.Code)
			}
		})
	}
}

func TestGetPageDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(testAPIConfig(server.URL+"/"), nil)

	_, err := client.GetPage(context.Background(), server.URL+"/positions/")
	if err == nil {
		t.Fatal("Expected decode error for non-json body")
	}

	apiErr, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("Expected *errors.Error, got %T", err)
	}
	if apiErr.Type != errors.ErrorTypeDecode {
		t.Errorf("Expected decode error type, got %s", apiErr.Type)
	}
	if errors.IsRetryable(apiErr.Type) {
		t.Error("Decode errors must not be retryable")
	}
}

func TestGetPageNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(testAPIConfig(url+"/"), nil)

	_, err := client.GetPage(context.Background(), url+"/positions/")
	if err == nil {
		t.Fatal("Expected network error for closed server")
	}

	apiErr, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("Expected *errors.Error, got %T", err)
	}
	if apiErr.Type != errors.ErrorTypeNetwork {
		t.Errorf("Expected network error type, got %s", apiErr.Type)
	}
	if !errors.IsRetryable(apiErr.Type) {
		t.Error("Network errors should be retryable")
	}
}

func TestNewClientWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"next": "", "results": []}`))
	}))
	defer server.Close()

	cfg := testAPIConfig(server.URL + "/")
	cfg.Token = ""
	client := NewClient(cfg, nil)

	if _, err := client.GetPage(context.Background(), server.URL+"/positions/"); err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Expected no auth header without token, got %q", gotAuth)
	}
}
