package scraper

import (
	"context"

	"clscraper/pkg/courtlistener"
)

// PageFetcher defines the API client operations the fetch loop needs
type PageFetcher interface {
	GetPage(ctx context.Context, url string) (*courtlistener.Page, error)
	BaseURL() string
}
