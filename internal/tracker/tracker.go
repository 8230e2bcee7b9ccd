package tracker

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/amazon"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/fetch"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// Tracker runs the single-ASIN extraction and reconciliation pipeline:
// primary product page → (offer-listing fallback when ambiguous) → merge.
type Tracker struct {
	fetcher       fetch.PageFetcher
	rateLimiter   *rate.Limiter
	maxConcurrent int
	mySellerName  string
}

// New creates a Tracker. The rate limiter and concurrency limit only govern
// BulkLookup fan-out; single lookups are paced by the transport itself.
func New(fetcher fetch.PageFetcher, rateLimiter *rate.Limiter, maxConcurrent int, mySellerName string) *Tracker {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Tracker{
		fetcher:       fetcher,
		rateLimiter:   rateLimiter,
		maxConcurrent: maxConcurrent,
		mySellerName:  mySellerName,
	}
}

// Lookup produces a snapshot for one ASIN. A fetch failure is not fatal:
// the returned snapshot then carries the unknown-seller sentinel and no
// price, and the error is returned alongside for logging.
func (t *Tracker) Lookup(ctx context.Context, asin, marketplace string) (models.ProductSnapshot, error) {
	ReportProgress(ctx, fmt.Sprintf("Fetching product page for %s...", asin))

	body, err := t.fetcher.FetchPage(ctx, fetch.ProductURL(marketplace, asin))
	if err != nil {
		snap := amazon.Merge(amazon.EmptySnapshot(asin, marketplace), nil, t.mySellerName)
		return snap, fmt.Errorf("fetch product page %s: %w", asin, err)
	}

	snap := amazon.ParseProductPage(string(body), asin, marketplace, t.mySellerName)
	if !snap.NeedsFallback {
		return snap, nil
	}

	// Primary document established neither seller nor price; escalate to the
	// all-offers page.
	ReportProgress(ctx, fmt.Sprintf("Primary page ambiguous for %s, checking offer listing...", asin))
	offerBody, err := t.fetcher.FetchPage(ctx, fetch.OfferListingURL(marketplace, asin))
	if err != nil {
		return amazon.Merge(snap, nil, t.mySellerName), nil
	}

	fallback := amazon.ParseOfferListing(string(offerBody), marketplace)
	return amazon.Merge(snap, fallback, t.mySellerName), nil
}

// LookupInput resolves raw user input (ASIN or product URL) and runs Lookup.
func (t *Tracker) LookupInput(ctx context.Context, raw, marketplace string) (models.ProductSnapshot, error) {
	asin, err := ExtractASIN(raw)
	if err != nil {
		return models.ProductSnapshot{}, err
	}
	return t.Lookup(ctx, asin, marketplace)
}

// BulkLookup fetches snapshots for several ASINs or URLs concurrently,
// bounded by the configured concurrency limit and rate limiter. Results
// preserve input order; individual fetch failures degrade to unknown
// snapshots rather than failing the batch.
func (t *Tracker) BulkLookup(ctx context.Context, inputs []string, marketplace string) ([]models.ProductSnapshot, error) {
	asins := make([]string, 0, len(inputs))
	for _, in := range inputs {
		asin, err := ExtractASIN(in)
		if err != nil {
			log.Printf("bulk lookup: skipping %q: %v", in, err)
			continue
		}
		asins = append(asins, asin)
	}
	if len(asins) == 0 {
		return nil, fmt.Errorf("no valid ASINs in input")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.maxConcurrent)

	results := make([]models.ProductSnapshot, len(asins))
	for i, asin := range asins {
		g.Go(func() error {
			if t.rateLimiter != nil {
				if err := t.rateLimiter.Wait(ctx); err != nil {
					return err
				}
			}
			snap, err := t.Lookup(ctx, asin, marketplace)
			if err != nil {
				log.Printf("bulk lookup %s: %v", asin, err)
			}
			results[i] = snap
			ReportProgress(ctx, fmt.Sprintf("Fetched %d/%d", i+1, len(asins)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
