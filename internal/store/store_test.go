package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func snapshot(asin string, price float64, seller string, status models.BuyboxStatus) models.ProductSnapshot {
	return models.ProductSnapshot{
		ASIN:           asin,
		Title:          "Scented Candle Set",
		Price:          &price,
		Currency:       "ZAR",
		Seller:         seller,
		Availability:   models.InStock,
		Marketplace:    "amazon.co.za",
		IsAmazonSeller: status == models.StatusAmazon,
		BuyboxStatus:   status,
		ScrapedAt:      time.Now().UTC(),
	}
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	snap := snapshot("B0C1234567", 1660.00, "Bonolo Online", models.StatusWinning)
	rating := 4.5
	reviews := 1024
	snap.Rating = &rating
	snap.ReviewCount = &reviews

	require.NoError(t, s.SaveSnapshot(snap))

	got, err := s.Latest("B0C1234567")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B0C1234567", got.ASIN)
	assert.Equal(t, "Scented Candle Set", got.Title)
	require.NotNil(t, got.Price)
	assert.InDelta(t, 1660.00, *got.Price, 0.001)
	assert.Equal(t, "Bonolo Online", got.Seller)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 4.5, *got.Rating, 0.001)
	require.NotNil(t, got.ReviewCount)
	assert.Equal(t, 1024, *got.ReviewCount)
	assert.Equal(t, models.StatusWinning, got.BuyboxStatus)
	assert.False(t, got.IsAmazonSeller)
}

func TestSaveSnapshot_UpsertKeepsSingleRow(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveSnapshot(snapshot("B0C1234567", 100.00, "Bonolo Online", models.StatusWinning)))
	require.NoError(t, s.SaveSnapshot(snapshot("B0C1234567", 90.00, "Amazon.co.za", models.StatusAmazon)))

	snaps, err := s.ListTracked()
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	require.NotNil(t, snaps[0].Price)
	assert.InDelta(t, 90.00, *snaps[0].Price, 0.001)
	assert.Equal(t, "Amazon.co.za", snaps[0].Seller)
	assert.True(t, snaps[0].IsAmazonSeller)

	// Both saves carried a price, so history has two rows
	entries, err := s.History("B0C1234567", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSaveSnapshot_NoPriceSkipsHistory(t *testing.T) {
	s := openTestStore(t)

	snap := snapshot("B0C1234567", 0, models.UnknownSeller, models.StatusUnknown)
	snap.Price = nil
	require.NoError(t, s.SaveSnapshot(snap))

	entries, err := s.History("B0C1234567", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	got, err := s.Latest("B0C1234567")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Price)
}

func TestLatest_NotTracked(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Latest("B000000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistory_LimitAndOrder(t *testing.T) {
	s := openTestStore(t)

	for _, price := range []float64{100, 200, 300} {
		require.NoError(t, s.SaveSnapshot(snapshot("B0C1234567", price, "Bonolo Online", models.StatusWinning)))
	}

	entries, err := s.History("B0C1234567", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "B0C1234567", e.ASIN)
		assert.Equal(t, "Bonolo Online", e.Seller)
	}
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveSnapshot(snapshot("B0C1234567", 100.00, "Bonolo Online", models.StatusWinning)))
	require.NoError(t, s.Remove("B0C1234567"))

	got, err := s.Latest("B0C1234567")
	require.NoError(t, err)
	assert.Nil(t, got)

	entries, err := s.History("B0C1234567", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStats(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveSnapshot(snapshot("B0C0000001", 100.00, "Amazon.co.za", models.StatusAmazon)))
	require.NoError(t, s.SaveSnapshot(snapshot("B0C0000002", 200.00, "Bonolo Online", models.StatusWinning)))
	require.NoError(t, s.SaveSnapshot(snapshot("B0C0000003", 300.00, "Candle Corner", models.StatusLosing)))

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTracked)
	assert.Equal(t, 1, stats.AmazonWins)
	assert.Equal(t, 2, stats.ThirdPartyWins)
	assert.InDelta(t, 200.00, stats.AvgBuyboxPrice, 0.001)
}
