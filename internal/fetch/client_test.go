package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFetcher_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := NewStaticFetcher(srv.Client())
	body, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
}

func TestStaticFetcher_BlockedOn503(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewStaticFetcher(srv.Client())
	_, err := f.FetchPage(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrBlocked)
	// 503 is the block signal, never retried
	assert.Equal(t, 1, calls)
}

func TestStaticFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewStaticFetcher(srv.Client())
	_, err := f.FetchPage(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaticFetcher_RetriesServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	f := NewStaticFetcher(srv.Client())
	body, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "recovered", string(body))
	assert.Equal(t, 3, calls)
}

func TestReadBody_Gzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("compressed content"))
		gz.Close()
	}))
	defer srv.Close()

	// Disable the transport's automatic decompression so ReadBody does it
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	f := NewStaticFetcher(client)
	body, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "compressed content", string(body))
}

type fakeFetcher struct {
	name  string
	body  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) FetchPage(context.Context, string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

func TestChain_EscalatesOnBlock(t *testing.T) {
	first := &fakeFetcher{name: "static", err: ErrBlocked}
	second := &fakeFetcher{name: "headless", body: []byte("rendered")}

	chain := NewChain(first, second)
	body, err := chain.FetchPage(context.Background(), "https://www.amazon.co.za/dp/B0C1234567")
	require.NoError(t, err)
	assert.Equal(t, "rendered", string(body))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChain_OtherErrorsAreTerminal(t *testing.T) {
	first := &fakeFetcher{name: "static", err: ErrNotFound}
	second := &fakeFetcher{name: "headless", body: []byte("rendered")}

	chain := NewChain(first, second)
	_, err := chain.FetchPage(context.Background(), "https://www.amazon.co.za/dp/B0C1234567")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, second.calls)
}

func TestChain_AllBlocked(t *testing.T) {
	first := &fakeFetcher{name: "static", err: ErrBlocked}
	second := &fakeFetcher{name: "headless", err: errors.New("browser launch failed")}

	chain := NewChain(first, second)
	_, err := chain.FetchPage(context.Background(), "https://www.amazon.co.za/dp/B0C1234567")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlocked)
}

func TestURLBuilders(t *testing.T) {
	assert.Equal(t, "https://www.amazon.co.za/dp/B0C1234567",
		ProductURL("amazon.co.za", "B0C1234567"))
	assert.Equal(t, "https://www.amazon.co.za/gp/offer-listing/B0C1234567",
		OfferListingURL("amazon.co.za", "B0C1234567"))
}
