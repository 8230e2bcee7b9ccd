package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

var (
	// ErrBlocked signals an anti-bot rejection (HTTP 503 on marketplace
	// pages). Callers may escalate to a rendering fetcher.
	ErrBlocked = errors.New("request blocked by marketplace")

	// ErrNotFound signals that the listing does not exist.
	ErrNotFound = errors.New("page not found")
)

// PageFetcher supplies a raw HTML document for a URL. The extraction core
// never fetches; it only consumes documents obtained through this interface.
type PageFetcher interface {
	Name() string
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
}

// StaticFetcher performs plain HTTP fetches through the configured transport.
type StaticFetcher struct {
	client     *http.Client
	maxRetries int
}

// NewStaticFetcher wraps an HTTP client (typically carrying a
// stealth.Transport) in a PageFetcher.
func NewStaticFetcher(client *http.Client) *StaticFetcher {
	return &StaticFetcher{client: client, maxRetries: 2}
}

func (f *StaticFetcher) Name() string { return "static" }

func (f *StaticFetcher) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := doWithRetry(f.client, req, f.maxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, ErrBlocked
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}

	return ReadBody(resp)
}

// doWithRetry performs an HTTP request with retry and linear backoff on
// transport errors and 5xx responses. A 503 is returned immediately: it is
// the block signal, not a transient fault.
func doWithRetry(client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if i > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("reset request body for retry: %w", err)
			}
			req.Body = body
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			select {
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
			continue
		}
		if resp.StatusCode >= 500 && resp.StatusCode != http.StatusServiceUnavailable {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			select {
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// ReadBody reads and decompresses an HTTP response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		var err error
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer reader.Close()
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	default:
		reader = resp.Body
	}
	return io.ReadAll(reader)
}

// Chain tries fetchers in order, escalating to the next only when the
// current one reports a block. Other failures are terminal: a missing page
// stays missing no matter how it is fetched.
type Chain struct {
	fetchers []PageFetcher
}

func NewChain(fetchers ...PageFetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error
	for _, f := range c.fetchers {
		body, err := f.FetchPage(ctx, pageURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !errors.Is(err, ErrBlocked) {
			break
		}
	}
	return nil, lastErr
}
