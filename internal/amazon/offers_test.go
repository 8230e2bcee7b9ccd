package amazon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOfferListing_LegacyLayout(t *testing.T) {
	markup := `<div class="olpOffer">
		<span class="olpOfferPrice">R1 660,00</span>
		<h3 class="olpSellerName"><a href="/sp?seller=A1">Bonolo Online</a></h3>
	</div>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	require.NotNil(t, offer.Price)
	assert.InDelta(t, 1660.00, *offer.Price, 0.001)
	assert.Equal(t, "Bonolo Online", offer.Seller)
	assert.Equal(t, "ZAR", offer.Currency)
}

func TestParseOfferListing_WholeFractionPrice(t *testing.T) {
	markup := `<span class="a-price">
		<span class="a-price-whole">1 660</span>
		<span class="a-price-fraction">50</span>
	</span>
	<a href="/gp/aag?id=A2">Mzansi Goods</a>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	require.NotNil(t, offer.Price)
	assert.InDelta(t, 1660.50, *offer.Price, 0.001)
	assert.Equal(t, "Mzansi Goods", offer.Seller)
}

func TestParseOfferListing_GenericSymbolPrice(t *testing.T) {
	markup := `<p>Lowest offer: R249,99 with free delivery</p>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	require.NotNil(t, offer.Price)
	assert.InDelta(t, 249.99, *offer.Price, 0.001)
	assert.Equal(t, "", offer.Seller)
}

func TestParseOfferListing_DataAttributeSeller(t *testing.T) {
	markup := `<div data-seller-name="Candle Corner"></div>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	assert.Nil(t, offer.Price)
	assert.Equal(t, "Candle Corner", offer.Seller)
}

func TestParseOfferListing_AnchorAriaSeller(t *testing.T) {
	markup := `<a href="/s?seller=A1B2" aria-label="Gadget Hub ZA opens new tab">shop</a>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	assert.Equal(t, "Gadget Hub ZA", offer.Seller)
}

func TestParseOfferListing_SoldByInline(t *testing.T) {
	markup := `<p>Sold by: <b>Mzansi Goods</b></p>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	assert.Equal(t, "Mzansi Goods", offer.Seller)
}

func TestParseOfferListing_OperatorNormalized(t *testing.T) {
	markup := `<span class="a-offscreen">$12.99</span>
	<p>Ships from and sold by Amazon.com.</p>`

	offer := ParseOfferListing(markup, "amazon.com")
	require.NotNil(t, offer)
	assert.Equal(t, "Amazon.com", offer.Seller)
	assert.Equal(t, "USD", offer.Currency)
}

func TestParseOfferListing_SellerClassOutranksText(t *testing.T) {
	markup := `<h3 class="olpSellerName"><span>Primary Seller</span></h3>
	<p>Sold by Someone Else.</p>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	assert.Equal(t, "Primary Seller", offer.Seller)
}

func TestParseOfferListing_PriceTextRejectsSymbolFree(t *testing.T) {
	// a-offscreen content with no currency symbol fails validation, the
	// generic rule then picks up the symbol-bearing text
	markup := `<span class="a-offscreen">free shipping</span>
	<p>Now only R45,00</p>`

	offer := ParseOfferListing(markup, "amazon.co.za")
	require.NotNil(t, offer)
	require.NotNil(t, offer.Price)
	assert.InDelta(t, 45.00, *offer.Price, 0.001)
}

func TestParseOfferListing_NothingFound(t *testing.T) {
	assert.Nil(t, ParseOfferListing("<html><body>nothing here</body></html>", "amazon.co.za"))
	assert.Nil(t, ParseOfferListing("", "amazon.co.za"))
}
