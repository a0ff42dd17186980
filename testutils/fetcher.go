// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yasi76/namesift/internal/entity"
)

// MockFetcher is a mock implementation of the fetch.Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

// NewMockFetcher creates a new mock fetcher instance.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

// Fetch retrieves page content for a URL.
func (m *MockFetcher) Fetch(ctx context.Context, url string) (*entity.PageContent, error) {
	args := m.Called(ctx, url)
	if page, ok := args.Get(0).(*entity.PageContent); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

// StaticFetcher serves fixed markup per URL without any network access.
type StaticFetcher struct {
	Pages map[string]string
	Err   error
}

// Fetch returns the configured markup for the URL, or the configured error.
func (s *StaticFetcher) Fetch(_ context.Context, url string) (*entity.PageContent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &entity.PageContent{
		URL:       url,
		FinalURL:  url,
		RawMarkup: s.Pages[url],
		FetchedAt: time.Now(),
	}, nil
}
