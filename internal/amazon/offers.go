package amazon

import (
	"regexp"
	"strings"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// The offer-listing fallback runs in a context with no DOM available, so
// every extraction rule here operates on raw markup text. Each sub-rule is a
// named pattern with a fixed priority; a higher-priority hit short-circuits
// the rest.

var (
	tagPattern = regexp.MustCompile(`(?s)<[^>]*>`)

	offerPriceTextPattern = regexp.MustCompile(
		`(?is)<(?:span|div)[^>]*class="[^"]*(?:olpOfferPrice|a-offscreen|a-color-price)[^"]*"[^>]*>([^<]+)<`)
	offerPriceWholePattern = regexp.MustCompile(
		`(?is)<span[^>]*class="[^"]*a-price-whole[^"]*"[^>]*>\s*([\d.,\x{00a0}\x{202f} ]+?)\s*<`)
	offerPriceFractionPattern = regexp.MustCompile(
		`(?is)<span[^>]*class="[^"]*a-price-fraction[^"]*"[^>]*>\s*(\d+)\s*<`)
	offerPriceGenericPattern = regexp.MustCompile(
		`[R$£€]\s?\d[\d.,\x{00a0}\x{202f} ]*`)

	offerSellerClassPattern = regexp.MustCompile(
		`(?is)<[^>]+class="[^"]*olpSellerName[^"]*"[^>]*>(.*?)</(?:h\d|div|span)>`)
	offerSellerDataAttrPattern = regexp.MustCompile(
		`(?i)data-seller-name="([^"]+)"`)
	anchorTagPattern      = regexp.MustCompile(`(?is)<a\b[^>]*>`)
	anchorHrefPattern     = regexp.MustCompile(`(?i)href="([^"]*)"`)
	anchorAriaPattern     = regexp.MustCompile(`(?i)aria-label="([^"]*)"`)
	offerSellerLinkTextPattern = regexp.MustCompile(
		`(?is)<a\b([^>]*href="[^"]*seller=[^"]*"[^>]*)>([^<]{2,100})</a>`)
	offerProfileLinkPattern = regexp.MustCompile(
		`(?is)<a\b([^>]*href="[^"]*(?:/sp\?|/shops/|/gp/aag)[^"]*"[^>]*)>([^<]{2,100})</a>`)
	offerSoldByInlinePattern = regexp.MustCompile(
		`(?is)Sold by\s*:?\s*<[^>]+>([^<]{2,100})<`)

	nonDigitPattern = regexp.MustCompile(`\D`)
)

type offerPriceRule struct {
	name string
	fn   func(markup string) *float64
}

type offerSellerRule struct {
	name string
	fn   func(markup string) string
}

var offerPriceRules = []offerPriceRule{
	{"price-text", offerPriceFromText},
	{"whole-fraction", offerPriceFromWholeFraction},
	{"generic-symbol", offerPriceFromGeneric},
}

var offerSellerRules = []offerSellerRule{
	{"seller-class", offerSellerFromClass},
	{"data-attribute", offerSellerFromDataAttr},
	{"anchor-aria", offerSellerFromAnchorAria},
	{"anchor-text", offerSellerFromAnchorText},
	{"profile-link", offerSellerFromProfileLink},
	{"sold-by-inline", offerSellerFromSoldByInline},
	{"sold-by-text", offerSellerFromSoldByText},
	{"operator-phrase", offerSellerFromOperatorPhrase},
}

// ParseOfferListing extracts (price, seller, currency) from a raw "all
// offers" page. Currency is inferred solely from the marketplace domain: the
// fallback document may use a different symbol placement than the primary
// one. Returns nil when neither a price nor a seller is found.
func ParseOfferListing(markup, marketplace string) *models.OfferListing {
	var price *float64
	for _, r := range offerPriceRules {
		if price = r.fn(markup); price != nil {
			break
		}
	}

	var seller string
	for _, r := range offerSellerRules {
		if seller = collapseSpace(r.fn(markup)); plausibleSeller(seller) {
			seller = NormalizeSeller(seller, marketplace)
			break
		}
		seller = ""
	}

	if price == nil && seller == "" {
		return nil
	}
	return &models.OfferListing{
		Price:    price,
		Seller:   seller,
		Currency: CurrencyForMarketplace(marketplace),
	}
}

func offerPriceFromText(markup string) *float64 {
	for _, m := range offerPriceTextPattern.FindAllStringSubmatch(markup, -1) {
		text := m[1]
		if !strings.ContainsAny(text, "R$£€") || !strings.ContainsAny(text, "0123456789") {
			continue
		}
		if p := ParsePrice(text); p != nil {
			return p
		}
	}
	return nil
}

// offerPriceFromWholeFraction recombines split whole/fraction price elements
// as "whole.fraction".
func offerPriceFromWholeFraction(markup string) *float64 {
	whole := offerPriceWholePattern.FindStringSubmatch(markup)
	if whole == nil {
		return nil
	}
	digits := nonDigitPattern.ReplaceAllString(whole[1], "")
	if digits == "" {
		return nil
	}
	fraction := "00"
	if frac := offerPriceFractionPattern.FindStringSubmatch(markup); frac != nil {
		fraction = frac[1]
	}
	return ParsePrice(digits + "." + fraction)
}

func offerPriceFromGeneric(markup string) *float64 {
	for _, m := range offerPriceGenericPattern.FindAllString(tagPattern.ReplaceAllString(markup, " "), -1) {
		if p := ParsePrice(m); p != nil {
			return p
		}
	}
	return nil
}

// offerSellerFromClass reads the dedicated seller-name element, stripped of
// any nested markup.
func offerSellerFromClass(markup string) string {
	m := offerSellerClassPattern.FindStringSubmatch(markup)
	if m == nil {
		return ""
	}
	return tagPattern.ReplaceAllString(m[1], " ")
}

func offerSellerFromDataAttr(markup string) string {
	m := offerSellerDataAttrPattern.FindStringSubmatch(markup)
	if m == nil {
		return ""
	}
	return m[1]
}

// offerSellerFromAnchorAria validates seller-profile anchors through their
// accessible name, as the primary resolver does.
func offerSellerFromAnchorAria(markup string) string {
	for _, tag := range anchorTagPattern.FindAllString(markup, -1) {
		href := anchorHrefPattern.FindStringSubmatch(tag)
		if href == nil || !strings.Contains(href[1], "seller=") {
			continue
		}
		aria := anchorAriaPattern.FindStringSubmatch(tag)
		if aria == nil {
			continue
		}
		label := collapseSpace(opensNewPagePattern.ReplaceAllString(aria[1], ""))
		if label == "" || isGenericAnchorPhrase(label) {
			continue
		}
		return label
	}
	return ""
}

func offerSellerFromAnchorText(markup string) string {
	for _, m := range offerSellerLinkTextPattern.FindAllStringSubmatch(markup, -1) {
		text := collapseSpace(m[2])
		if text == "" || isGenericAnchorPhrase(text) {
			continue
		}
		return text
	}
	return ""
}

// offerSellerFromProfileLink matches query-parameter or path-based
// seller-profile URLs.
func offerSellerFromProfileLink(markup string) string {
	for _, m := range offerProfileLinkPattern.FindAllStringSubmatch(markup, -1) {
		text := collapseSpace(m[2])
		if text == "" || isGenericAnchorPhrase(text) {
			continue
		}
		return text
	}
	return ""
}

func offerSellerFromSoldByInline(markup string) string {
	m := offerSoldByInlinePattern.FindStringSubmatch(markup)
	if m == nil {
		return ""
	}
	return m[1]
}

func offerSellerFromSoldByText(markup string) string {
	text := collapseSpace(tagPattern.ReplaceAllString(markup, " "))
	m := freeTextSellerPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return trailingParenPattern.ReplaceAllString(strings.TrimSpace(m[1]), "")
}

func offerSellerFromOperatorPhrase(markup string) string {
	text := collapseSpace(tagPattern.ReplaceAllString(markup, " "))
	if operatorPhrasePattern.MatchString(text) {
		return "Amazon"
	}
	return ""
}
