package fetch

import "fmt"

// ProductURL returns the primary product-page URL for an ASIN.
func ProductURL(marketplace, asin string) string {
	return fmt.Sprintf("https://www.%s/dp/%s", marketplace, asin)
}

// OfferListingURL returns the secondary "all offers" page URL for an ASIN.
func OfferListingURL(marketplace, asin string) string {
	return fmt.Sprintf("https://www.%s/gp/offer-listing/%s", marketplace, asin)
}
