package amazon

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// Some product pages embed a schema.org Product block. When the visible DOM
// yields no price, this structured data can still supply price, rating and
// review count before the offer-listing fallback is considered.

type jsonLDProduct struct {
	Title       string
	Price       *float64
	Seller      string
	Rating      *float64
	ReviewCount *int
	ImageURL    string
}

type jsonLDItem struct {
	Type            string                 `json:"@type"`
	Name            string                 `json:"name"`
	Image           interface{}            `json:"image"`
	Offers          *jsonLDOffer           `json:"offers"`
	AggregateRating *jsonLDAggregateRating `json:"aggregateRating"`
}

type jsonLDOffer struct {
	Price  json.Number   `json:"price"`
	Seller *jsonLDSeller `json:"seller"`
}

type jsonLDSeller struct {
	Name string `json:"name"`
}

type jsonLDAggregateRating struct {
	RatingValue json.Number `json:"ratingValue"`
	ReviewCount json.Number `json:"reviewCount"`
}

// extractJSONLD walks the document for application/ld+json script blocks and
// returns the first Product found, or nil.
func extractJSONLD(markup string) *jsonLDProduct {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var found *jsonLDProduct
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, attr := range n.Attr {
				if attr.Key == "type" && attr.Val == "application/ld+json" && n.FirstChild != nil {
					if p := parseJSONLDProduct(n.FirstChild.Data); p != nil {
						found = p
						return
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func parseJSONLDProduct(data string) *jsonLDProduct {
	data = strings.TrimSpace(data)

	var item jsonLDItem
	if err := json.Unmarshal([]byte(data), &item); err == nil {
		if p := jsonLDToProduct(&item); p != nil {
			return p
		}
	}

	var items []jsonLDItem
	if err := json.Unmarshal([]byte(data), &items); err == nil {
		for i := range items {
			if p := jsonLDToProduct(&items[i]); p != nil {
				return p
			}
		}
	}
	return nil
}

func jsonLDToProduct(item *jsonLDItem) *jsonLDProduct {
	if item.Type != "Product" {
		return nil
	}

	p := &jsonLDProduct{Title: item.Name}

	if item.Offers != nil {
		if v, err := item.Offers.Price.Float64(); err == nil && v > 0 {
			p.Price = &v
		}
		if item.Offers.Seller != nil {
			p.Seller = item.Offers.Seller.Name
		}
	}

	if item.AggregateRating != nil {
		if v, err := item.AggregateRating.RatingValue.Float64(); err == nil && v >= 0 && v <= 5 {
			p.Rating = &v
		}
		if rc, err := item.AggregateRating.ReviewCount.Int64(); err == nil && rc >= 0 {
			n := int(rc)
			p.ReviewCount = &n
		}
	}

	switch img := item.Image.(type) {
	case string:
		p.ImageURL = img
	case []interface{}:
		if len(img) > 0 {
			if s, ok := img[0].(string); ok {
				p.ImageURL = s
			}
		}
	}

	return p
}
