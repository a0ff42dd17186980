// Package fetch supplies page content for the pipeline. It is the one
// collaborator that touches the network: bounded timeouts per request,
// per-host rate limiting, and a typed failure taxonomy so the pipeline can
// record why a URL produced no content without aborting a batch.
package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/logger"
	"github.com/yasi76/namesift/internal/normalize"
)

// Fetcher retrieves one page. Implementations must be safe for concurrent
// use; each URL's fetch is independent of every other's.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*entity.PageContent, error)
}

// Error is the typed fetch failure surfaced to the pipeline.
type Error struct {
	Kind   entity.FailureKind
	URL    string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == entity.FailureHTTP {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// HTTPFetcher fetches pages over HTTP with per-host rate limiting.
type HTTPFetcher struct {
	client   *http.Client
	cfg      config.Fetch
	log      logger.Interface
	limiters sync.Map // host -> *rate.Limiter
}

// NewHTTP creates an HTTPFetcher from fetch configuration.
func NewHTTP(cfg config.Fetch, log logger.Interface) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg: cfg,
		log: log.WithComponent("fetch"),
	}
}

// Fetch implements Fetcher. The returned PageContent carries the final URL
// after redirects; failures come back as *Error.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*entity.PageContent, error) {
	if err := f.waitTurn(ctx, pageURL); err != nil {
		return nil, classify(pageURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, &Error{Kind: entity.FailureNetwork, URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{Kind: entity.FailureHTTP, URL: pageURL, Status: resp.StatusCode}
	}

	// Enough of the page for head metadata and above-the-fold headings;
	// reading whole marketing pages buys nothing.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, classify(pageURL, err)
	}

	f.log.Debug("fetched page",
		"url", pageURL,
		"final_url", resp.Request.URL.String(),
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return &entity.PageContent{
		URL:       pageURL,
		FinalURL:  resp.Request.URL.String(),
		RawMarkup: string(body),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// waitTurn blocks until the host's rate limiter grants a slot.
func (f *HTTPFetcher) waitTurn(ctx context.Context, pageURL string) error {
	host := normalize.Host(pageURL)
	if host == "" || f.cfg.RatePerHost <= 0 {
		return nil
	}

	limiter, _ := f.limiters.LoadOrStore(host,
		rate.NewLimiter(rate.Limit(f.cfg.RatePerHost), max(f.cfg.RateBurst, 1)))

	return limiter.(*rate.Limiter).Wait(ctx)
}

// classify maps a transport error to the failure taxonomy.
func classify(pageURL string, err error) *Error {
	kind := entity.FailureNetwork

	var netErr net.Error
	var certErr *tls.CertificateVerificationError
	var hostnameErr x509.HostnameError
	var unknownAuth x509.UnknownAuthorityError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = entity.FailureTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = entity.FailureTimeout
	case errors.As(err, &certErr), errors.As(err, &hostnameErr), errors.As(err, &unknownAuth):
		kind = entity.FailureSSL
	case strings.Contains(err.Error(), "tls:"), strings.Contains(err.Error(), "x509:"):
		kind = entity.FailureSSL
	}

	return &Error{Kind: kind, URL: pageURL, Err: err}
}
