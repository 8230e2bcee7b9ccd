package models

import "time"

// UnknownSeller is the sentinel used whenever the buybox seller cannot be
// resolved. It is never the empty string; downstream classification depends
// on this exact value.
const UnknownSeller = "Unknown"

// BuyboxStatus classifies who currently holds the buybox.
type BuyboxStatus string

const (
	StatusAmazon  BuyboxStatus = "amazon"
	StatusWinning BuyboxStatus = "winning"
	StatusLosing  BuyboxStatus = "losing"
	StatusUnknown BuyboxStatus = "unknown"
)

// Availability is a coarse stock classification of the listing.
type Availability string

const (
	InStock                Availability = "in_stock"
	OutOfStock             Availability = "out_of_stock"
	TemporarilyUnavailable Availability = "temporarily_unavailable"
	AvailabilityUnknown    Availability = "unknown"
)

// ProductSnapshot is one extraction result for an ASIN. It is a value object:
// created fresh per extraction and never mutated in place. Reconciliation
// with a fallback source produces a new snapshot.
type ProductSnapshot struct {
	ASIN           string       `json:"asin"`
	Title          string       `json:"title,omitempty"`
	Price          *float64     `json:"price,omitempty"`
	Currency       string       `json:"currency"`
	Seller         string       `json:"seller"`
	Rating         *float64     `json:"rating,omitempty"`
	ReviewCount    *int         `json:"review_count,omitempty"`
	Availability   Availability `json:"availability"`
	ImageURL       string       `json:"image_url,omitempty"`
	Marketplace    string       `json:"marketplace"`
	IsAmazonSeller bool         `json:"is_amazon_seller"`
	BuyboxStatus   BuyboxStatus `json:"buybox_status"`
	ScrapedAt      time.Time    `json:"scraped_at"`

	// NeedsFallback is set when the primary document yielded neither a price
	// nor a seller. It is consumed by the merge step and never persisted.
	NeedsFallback bool `json:"-"`
}

// OfferListing is the normalized result of parsing a secondary "all offers"
// page. A nil Price means the value could not be determined.
type OfferListing struct {
	Price    *float64 `json:"price,omitempty"`
	Seller   string   `json:"seller,omitempty"`
	Currency string   `json:"currency"`
}

// HistoryEntry is one append-only price history row for a tracked ASIN.
type HistoryEntry struct {
	ASIN        string       `json:"asin"`
	Marketplace string       `json:"marketplace"`
	Price       *float64     `json:"price,omitempty"`
	Seller      string       `json:"seller"`
	Status      BuyboxStatus `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Stats summarizes the tracked set.
type Stats struct {
	TotalTracked   int     `json:"total_tracked"`
	AmazonWins     int     `json:"amazon_wins"`
	ThirdPartyWins int     `json:"third_party_wins"`
	AvgBuyboxPrice float64 `json:"avg_buybox_price"`
}
