package amazon

import (
	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// Merge reconciles a primary snapshot with an offer-listing fallback.
// Fallback fields only fill gaps, never overwrite a primary value that is
// already present. The derived fields are recomputed from the merged seller,
// since the fallback may have resolved what the primary could not, and the
// fallback flag is cleared unconditionally so no further fallback is
// attempted this refresh. The inputs are not mutated.
func Merge(primary models.ProductSnapshot, fallback *models.OfferListing, mySellerName string) models.ProductSnapshot {
	merged := primary

	if fallback != nil {
		if merged.Price == nil && fallback.Price != nil {
			p := *fallback.Price
			merged.Price = &p
		}
		if (merged.Seller == "" || merged.Seller == models.UnknownSeller) && fallback.Seller != "" {
			merged.Seller = fallback.Seller
		}
		if merged.Currency == "" && fallback.Currency != "" {
			merged.Currency = fallback.Currency
		}
	}

	merged.IsAmazonSeller = IsOperatorSeller(merged.Seller)
	merged.BuyboxStatus = Classify(merged.Seller, mySellerName)
	merged.NeedsFallback = false
	return merged
}
