package amazon

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestResolveSeller_ProfileTrigger(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div id="merchant-info">Sold by <a id="sellerProfileTriggerId" href="/sp?seller=A123">Bonolo Online</a></div>
	</body></html>`)
	assert.Equal(t, "Bonolo Online", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_OffersPanel(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div id="aod-offer-soldBy">Sold by <a href="/sp?seller=A9">Takealot Traders</a></div>
		<a id="sellerProfileTriggerId">Should Not Win</a>
	</body></html>`)
	// Offers panel outranks the profile trigger
	assert.Equal(t, "Takealot Traders", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_LabelSibling(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div><span>Sold by</span><span>Gadget Hub ZA</span></div>
	</body></html>`)
	assert.Equal(t, "Gadget Hub ZA", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_ProfileAnchorAriaLabel(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<a href="/s?seller=A1B2" aria-label="Bonolo Online opens a new page">shop</a>
	</body></html>`)
	assert.Equal(t, "Bonolo Online", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_ProfileAnchorRejectsNavigation(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<a href="/s?seller=A1B2" aria-label="See all offers">all offers</a>
	</body></html>`)
	assert.Equal(t, models.UnknownSeller, ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_MerchantInfoOperator(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div id="merchant-info">Ships from and sold by Amazon.co.za.</div>
	</body></html>`)
	// Operator normalization is the final step, applied to the candidate
	assert.Equal(t, "Amazon.co.za", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_TabularBuybox(t *testing.T) {
	doc := docFromHTML(t, `<html><body><div id="tabular-buybox">
		<div class="tabular-buybox-text"><span class="a-color-secondary">Ships from</span><span class="a-color-base">Amazon</span></div>
		<div class="tabular-buybox-text"><span class="a-color-secondary">Sold by</span><span class="a-color-base">Candle Corner</span></div>
	</div></body></html>`)
	assert.Equal(t, "Candle Corner", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_FreeText(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<p>This item ships soon. Sold by Mzansi Goods. Seller rating 98%</p>
	</body></html>`)
	assert.Equal(t, "Mzansi Goods", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_FreeTextOperatorNormalized(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<p>Sold by Amazon.co.za. Dispatched within 24 hours.</p>
	</body></html>`)
	assert.Equal(t, "Amazon.co.za", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_OperatorPhrase(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<p>This product is sent from and sold by amazon for your convenience</p>
	</body></html>`)
	assert.Equal(t, "Amazon.co.za", ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_NoMatch(t *testing.T) {
	doc := docFromHTML(t, `<html><body><p>Nothing to see here</p></body></html>`)
	assert.Equal(t, models.UnknownSeller, ResolveSeller(doc, "amazon.co.za"))
}

func TestResolveSeller_ImplausibleCandidateSkipped(t *testing.T) {
	// Single-rune candidate fails the plausibility check so the cascade
	// continues to the next strategy
	doc := docFromHTML(t, `<html><body>
		<a id="sellerProfileTriggerId">X</a>
		<div id="merchant-info"><a href="/sp?seller=A2">Real Seller Shop</a></div>
	</body></html>`)
	assert.Equal(t, "Real Seller Shop", ResolveSeller(doc, "amazon.co.za"))
}

func TestNormalizeSeller(t *testing.T) {
	assert.Equal(t, "Amazon.co.za", NormalizeSeller("Amazon", "amazon.co.za"))
	assert.Equal(t, "Amazon.com", NormalizeSeller("amazon warehouse", "amazon.com"))
	assert.Equal(t, "Bonolo Online", NormalizeSeller("Bonolo Online", "amazon.co.za"))
}
