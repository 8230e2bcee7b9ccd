package amazon

import (
	"strings"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// DefaultCurrency is used for marketplaces with no known mapping.
const DefaultCurrency = "USD"

// marketplaceCurrencies maps marketplace domain fragments to ISO 4217 codes.
var marketplaceCurrencies = []struct {
	domain   string
	currency string
}{
	{"amazon.co.za", "ZAR"},
	{"amazon.co.uk", "GBP"},
	{"amazon.de", "EUR"},
	{"amazon.fr", "EUR"},
	{"amazon.it", "EUR"},
	{"amazon.es", "EUR"},
	{"amazon.ca", "CAD"},
	{"amazon.com.au", "AUD"},
	{"amazon.in", "INR"},
	{"amazon.co.jp", "JPY"},
}

// CurrencyForMarketplace infers the 3-letter currency code from the
// marketplace domain.
func CurrencyForMarketplace(marketplace string) string {
	m := strings.ToLower(marketplace)
	for _, e := range marketplaceCurrencies {
		if strings.Contains(m, e.domain) {
			return e.currency
		}
	}
	return DefaultCurrency
}

// OperatorName returns the marketplace operator's canonical display name,
// e.g. "Amazon.co.za" for marketplace "amazon.co.za".
func OperatorName(marketplace string) string {
	m := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(marketplace), "www."))
	if m == "" {
		return "Amazon"
	}
	return strings.ToUpper(m[:1]) + m[1:]
}

// IsOperatorSeller reports whether the seller text case-insensitively
// mentions the marketplace operator.
func IsOperatorSeller(seller string) bool {
	return strings.Contains(strings.ToLower(seller), "amazon")
}

// Classify derives the buybox status from the resolved seller and the
// configured own seller name. Pure function; degenerate input yields
// StatusUnknown.
func Classify(seller, mySellerName string) models.BuyboxStatus {
	s := strings.TrimSpace(seller)
	switch {
	case s == "" || s == models.UnknownSeller:
		return models.StatusUnknown
	case IsOperatorSeller(s):
		return models.StatusAmazon
	case mySellerName != "" && strings.Contains(strings.ToLower(s), strings.ToLower(mySellerName)):
		return models.StatusWinning
	default:
		return models.StatusLosing
	}
}
