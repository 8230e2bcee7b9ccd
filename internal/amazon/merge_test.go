package amazon

import (
	"testing"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fl(v float64) *float64 { return &v }

func TestMerge_GapFillOnly(t *testing.T) {
	primary := EmptySnapshot("B0TESTASIN", "amazon.co.za")
	primary.Price = fl(45.00)

	fallback := &models.OfferListing{
		Price:    fl(99.99),
		Seller:   "Bonolo Online",
		Currency: "ZAR",
	}

	merged := Merge(primary, fallback, "Bonolo Online")

	// Primary price wins, fallback only fills the missing seller
	require.NotNil(t, merged.Price)
	assert.InDelta(t, 45.00, *merged.Price, 0.001)
	assert.Equal(t, "Bonolo Online", merged.Seller)
	assert.Equal(t, models.StatusWinning, merged.BuyboxStatus)
	assert.False(t, merged.IsAmazonSeller)
	assert.False(t, merged.NeedsFallback)
}

func TestMerge_UnknownSellerIsAGap(t *testing.T) {
	primary := EmptySnapshot("B0TESTASIN", "amazon.co.za")

	fallback := &models.OfferListing{
		Price:    fl(1660.00),
		Seller:   "Amazon.co.za",
		Currency: "ZAR",
	}

	merged := Merge(primary, fallback, "Bonolo Online")

	assert.Equal(t, "Amazon.co.za", merged.Seller)
	assert.True(t, merged.IsAmazonSeller)
	assert.Equal(t, models.StatusAmazon, merged.BuyboxStatus)
	require.NotNil(t, merged.Price)
	assert.InDelta(t, 1660.00, *merged.Price, 0.001)
}

func TestMerge_NilFallbackClearsFlag(t *testing.T) {
	primary := EmptySnapshot("B0TESTASIN", "amazon.co.za")
	assert.True(t, primary.NeedsFallback)

	merged := Merge(primary, nil, "Bonolo Online")

	assert.False(t, merged.NeedsFallback)
	assert.Equal(t, models.UnknownSeller, merged.Seller)
	assert.Equal(t, models.StatusUnknown, merged.BuyboxStatus)
	assert.Nil(t, merged.Price)
}

func TestMerge_Idempotent(t *testing.T) {
	primary := EmptySnapshot("B0TESTASIN", "amazon.co.za")
	fallback := &models.OfferListing{Price: fl(250.00), Seller: "Candle Corner", Currency: "ZAR"}

	once := Merge(primary, fallback, "Bonolo Online")
	twice := Merge(once, nil, "Bonolo Online")

	assert.Equal(t, once, twice)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	primary := EmptySnapshot("B0TESTASIN", "amazon.co.za")
	fallback := &models.OfferListing{Price: fl(10.00), Seller: "Candle Corner", Currency: "ZAR"}

	_ = Merge(primary, fallback, "Bonolo Online")

	assert.True(t, primary.NeedsFallback)
	assert.Equal(t, models.UnknownSeller, primary.Seller)
	assert.Equal(t, "Candle Corner", fallback.Seller)
	require.NotNil(t, fallback.Price)
	assert.InDelta(t, 10.00, *fallback.Price, 0.001)
}
