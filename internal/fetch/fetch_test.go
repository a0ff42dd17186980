package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/fetch"
	"github.com/yasi76/namesift/internal/logger"
)

func fetchConfig() config.Fetch {
	cfg := config.Default().Fetch
	cfg.Timeout = 2 * time.Second
	cfg.RatePerHost = 0 // no throttling in tests
	return cfg
}

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	const body = "<html><head><title>Acme</title></head></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := fetch.NewHTTP(fetchConfig(), logger.NewNoOp())
	page, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, srv.URL, page.URL)
	assert.Equal(t, body, page.RawMarkup)
	assert.False(t, page.FetchedAt.IsZero())
}

func TestFetchFollowsRedirects(t *testing.T) {
	t.Parallel()

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer target.Close()

	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/final", http.StatusMovedPermanently)
	}))
	defer src.Close()

	f := fetch.NewHTTP(fetchConfig(), logger.NewNoOp())
	page, err := f.Fetch(context.Background(), src.URL)

	require.NoError(t, err)
	assert.Equal(t, src.URL, page.URL)
	assert.Equal(t, target.URL+"/final", page.FinalURL)
}

func TestFetchHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := fetch.NewHTTP(fetchConfig(), logger.NewNoOp())
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, entity.FailureHTTP, fetchErr.Kind)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := fetchConfig()
	cfg.Timeout = 50 * time.Millisecond
	f := fetch.NewHTTP(cfg, logger.NewNoOp())

	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, entity.FailureTimeout, fetchErr.Kind)
}

func TestFetchNetworkError(t *testing.T) {
	t.Parallel()

	f := fetch.NewHTTP(fetchConfig(), logger.NewNoOp())
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1")

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, entity.FailureNetwork, fetchErr.Kind)
}

func TestFetchSSLError(t *testing.T) {
	t.Parallel()

	// httptest's TLS server uses a self-signed certificate the default
	// client does not trust.
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := fetch.NewHTTP(fetchConfig(), logger.NewNoOp())
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, entity.FailureSSL, fetchErr.Kind)
}

func TestFetchBodyTruncated(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for range 1000 {
			_, _ = w.Write([]byte("xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"))
		}
	}))
	defer srv.Close()

	cfg := fetchConfig()
	cfg.MaxBodyBytes = 1024
	f := fetch.NewHTTP(cfg, logger.NewNoOp())

	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, page.RawMarkup, 1024)
}

func TestCachingFetcher(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := fetch.NewCaching(fetch.NewHTTP(fetchConfig(), logger.NewNoOp()), time.Minute, logger.NewNoOp())

	for range 3 {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), hits.Load(), "repeated fetches of one URL must hit the network once")
}

func TestCachingFetcherDoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := fetch.NewCaching(fetch.NewHTTP(fetchConfig(), logger.NewNoOp()), time.Minute, logger.NewNoOp())

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	_, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err, "a failure must stay retryable")
	assert.Equal(t, int32(2), hits.Load())
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := &fetch.Error{Kind: entity.FailureNetwork, URL: "https://example.com", Err: inner}

	assert.Contains(t, err.Error(), "example.com")
	assert.ErrorIs(t, err, inner)

	httpErr := &fetch.Error{Kind: entity.FailureHTTP, URL: "https://example.com", Status: 503}
	assert.Contains(t, httpErr.Error(), "503")
}
