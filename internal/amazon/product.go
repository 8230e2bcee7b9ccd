package amazon

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// Known price container ids, most reliable first.
var priceContainerIDs = []string{
	"corePriceDisplay_desktop_feature_div",
	"apex_desktop",
	"buybox",
	"buyNewSection",
	"price",
	"tmmSwatches",
}

// Legacy price element ids kept as a terminal fallback.
var legacyPriceSelectors = []string{
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	"#price_inside_buybox",
	".priceToPay",
}

// EmptySnapshot is the conservative record returned when no document could
// be obtained for an ASIN: seller unknown, price undetermined.
func EmptySnapshot(asin, marketplace string) models.ProductSnapshot {
	return models.ProductSnapshot{
		ASIN:          asin,
		Currency:      CurrencyForMarketplace(marketplace),
		Seller:        models.UnknownSeller,
		Availability:  models.AvailabilityUnknown,
		Marketplace:   marketplace,
		BuyboxStatus:  models.StatusUnknown,
		ScrapedAt:     time.Now().UTC(),
		NeedsFallback: true,
	}
}

// ParseProductPage extracts a full snapshot from a primary product-page
// document. Malformed markup never produces an error: every field degrades
// to its unknown terminal value. The NeedsFallback flag is set when neither
// a seller nor a price could be established.
func ParseProductPage(markup, asin, marketplace, mySellerName string) models.ProductSnapshot {
	snap := EmptySnapshot(asin, marketplace)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return snap
	}

	snap.Title = extractTitle(doc)
	snap.Price = extractPrice(doc)
	snap.Seller = ResolveSeller(doc, marketplace)
	snap.Rating = ParseRating(doc.Find("span#acrPopover").First().AttrOr("title", ""))
	snap.ReviewCount = ParseReviewCount(doc.Find("#acrCustomerReviewText").First().Text())
	snap.Availability = ParseAvailability(doc.Find("#availability").First().Text())
	snap.ImageURL = extractImageURL(doc)

	// Structured data can fill what the visible DOM did not expose.
	if snap.Price == nil || snap.Rating == nil || snap.ReviewCount == nil {
		if ld := extractJSONLD(markup); ld != nil {
			if snap.Price == nil {
				snap.Price = ld.Price
			}
			if snap.Rating == nil {
				snap.Rating = ld.Rating
			}
			if snap.ReviewCount == nil {
				snap.ReviewCount = ld.ReviewCount
			}
			if snap.Title == "" {
				snap.Title = ld.Title
			}
			if snap.ImageURL == "" {
				snap.ImageURL = ld.ImageURL
			}
			if snap.Seller == models.UnknownSeller && plausibleSeller(collapseSpace(ld.Seller)) {
				snap.Seller = NormalizeSeller(collapseSpace(ld.Seller), marketplace)
			}
		}
	}

	snap.IsAmazonSeller = IsOperatorSeller(snap.Seller)
	snap.BuyboxStatus = Classify(snap.Seller, mySellerName)
	snap.NeedsFallback = snap.Seller == models.UnknownSeller && snap.Price == nil
	return snap
}

func extractTitle(doc *goquery.Document) string {
	if t := collapseSpace(doc.Find("span#productTitle").First().Text()); t != "" {
		return t
	}
	return collapseSpace(doc.Find("h1#title").First().Text())
}

// extractPrice walks the known price containers first, then falls back to
// page-wide offscreen spans and finally the legacy price element ids.
func extractPrice(doc *goquery.Document) *float64 {
	for _, id := range priceContainerIDs {
		if p := priceFromBlock(doc.Find("#" + id).First()); p != nil {
			return p
		}
	}

	var price *float64
	doc.Find("span.a-offscreen").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if p := ParsePrice(s.Text()); p != nil {
			price = p
			return false
		}
		return true
	})
	if price != nil {
		return price
	}

	for _, sel := range legacyPriceSelectors {
		if p := ParsePrice(doc.Find(sel).First().Text()); p != nil {
			return p
		}
	}
	return nil
}

// priceFromBlock handles both the split whole+fraction layout and the hidden
// full-price span inside a price container.
func priceFromBlock(block *goquery.Selection) *float64 {
	if block.Length() == 0 {
		return nil
	}

	if whole := block.Find("span.a-price-whole").First(); whole.Length() > 0 {
		digits := nonDigitPattern.ReplaceAllString(whole.Text(), "")
		fraction := nonDigitPattern.ReplaceAllString(block.Find("span.a-price-fraction").First().Text(), "")
		if fraction == "" {
			fraction = "00"
		}
		if digits != "" {
			if p := ParsePrice(digits + "." + fraction); p != nil {
				return p
			}
		}
	}

	return ParsePrice(block.Find("span.a-offscreen").First().Text())
}

func extractImageURL(doc *goquery.Document) string {
	img := doc.Find("img#landingImage").First()
	if img.Length() == 0 {
		img = doc.Find("img#imgBlkFront").First()
	}
	if img.Length() == 0 {
		return ""
	}
	if src := img.AttrOr("src", ""); src != "" && strings.HasPrefix(src, "http") {
		return src
	}
	// data-a-dynamic-image holds a JSON object keyed by image URL.
	if dyn := img.AttrOr("data-a-dynamic-image", ""); dyn != "" {
		var m map[string]json.RawMessage
		if err := json.Unmarshal([]byte(dyn), &m); err == nil {
			for u := range m {
				if strings.HasPrefix(u, "http") {
					return u
				}
			}
		}
	}
	return ""
}
