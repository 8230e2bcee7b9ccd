package amazon

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// Plausibility bounds for a candidate seller string. Tunable heuristics, not
// semantic thresholds: they exist to reject obviously malformed matches.
const (
	sellerMinLen = 2
	sellerMaxLen = 100
)

var (
	wsPattern = regexp.MustCompile(`\s+`)

	// Trailing accessibility suffix on seller-profile anchors.
	opensNewPagePattern = regexp.MustCompile(`(?i)\s*opens?\s+(?:a\s+)?new\s+(?:page|tab|window)\.?\s*$`)

	// Trailing parenthetical annotations, e.g. rating counts.
	trailingParenPattern = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

	// "Sold by <name>" in flattened page text, terminated by sentence
	// punctuation or a known trailing phrase.
	freeTextSellerPattern = regexp.MustCompile(
		`Sold by\s+([^.\n|]{2,100}?)(?:\s*\.|\s*\||\s*Seller rating|\s*Ships|\s*Delivered|\s*Fulfilled|$)`)

	operatorPhrasePattern = regexp.MustCompile(
		`(?i)(?:sent from and sold by|sold and fulfilled by|ships from and sold by|sold by)\s*amazon`)
)

// Anchor text matching these phrases is navigation chrome, not a seller name.
var genericAnchorPhrases = []string{"see all", "compare", "offer", "detail", "delivery"}

// sellerStrategy is one independent extraction rule over the primary
// document. Each returns a raw candidate or "" when it does not apply.
type sellerStrategy struct {
	name string
	fn   func(doc *goquery.Document) string
}

// Ordered most to least specific: dedicated markup carries unambiguous seller
// attribution, free-text scanning is a last resort prone to false positives.
var sellerStrategies = []sellerStrategy{
	{"offers-panel", sellerFromOffersPanel},
	{"profile-trigger", sellerFromProfileTrigger},
	{"label-sibling", sellerFromLabelSibling},
	{"profile-anchor", sellerFromProfileAnchor},
	{"merchant-info", sellerFromMerchantInfo},
	{"tabular-buybox", sellerFromTabularBuybox},
	{"free-text", sellerFromFreeText},
	{"operator-phrase", sellerFromOperatorPhrase},
}

// ResolveSeller extracts the buybox seller from a primary product document.
// The first strategy yielding a plausible candidate wins; operator-name
// normalization is applied uniformly as the final step, never per-strategy.
// Returns the "Unknown" sentinel when no strategy matches.
func ResolveSeller(doc *goquery.Document, marketplace string) string {
	for _, st := range sellerStrategies {
		candidate := collapseSpace(st.fn(doc))
		if !plausibleSeller(candidate) {
			continue
		}
		return NormalizeSeller(candidate, marketplace)
	}
	return models.UnknownSeller
}

// NormalizeSeller maps a candidate that mentions the marketplace operator to
// the operator's canonical display name. It operates only on an already
// isolated candidate string, never on raw surrounding text.
func NormalizeSeller(candidate, marketplace string) string {
	if IsOperatorSeller(candidate) {
		return OperatorName(marketplace)
	}
	return candidate
}

func plausibleSeller(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= sellerMinLen && n <= sellerMaxLen
}

func collapseSpace(s string) string {
	return strings.TrimSpace(wsPattern.ReplaceAllString(s, " "))
}

func isGenericAnchorPhrase(s string) bool {
	l := strings.ToLower(s)
	for _, p := range genericAnchorPhrases {
		if strings.Contains(l, p) {
			return true
		}
	}
	return false
}

// sellerFromOffersPanel reads the seller attribution of an already expanded
// "all offers" panel.
func sellerFromOffersPanel(doc *goquery.Document) string {
	sel := doc.Find("#aod-offer-soldBy").First()
	if sel.Length() == 0 {
		return ""
	}
	if a := sel.Find("a").First(); a.Length() > 0 {
		return a.Text()
	}
	return strings.TrimPrefix(collapseSpace(sel.Text()), "Sold by ")
}

func sellerFromProfileTrigger(doc *goquery.Document) string {
	return doc.Find("a#sellerProfileTriggerId").First().Text()
}

// sellerFromLabelSibling covers layouts that split a "Sold by" label and the
// seller name into adjacent nodes with no intervening whitespace.
func sellerFromLabelSibling(doc *goquery.Document) string {
	var out string
	doc.Find("span, div, td").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if collapseSpace(s.Text()) != "Sold by" {
			return true
		}
		if next := s.Next(); next.Length() > 0 {
			if c := collapseSpace(next.Text()); c != "" {
				out = c
				return false
			}
		}
		parent := collapseSpace(s.Parent().Text())
		if c := strings.TrimSpace(strings.TrimPrefix(parent, "Sold by")); c != "" {
			out = c
			return false
		}
		return true
	})
	return out
}

// sellerFromProfileAnchor validates seller-profile links via their accessible
// name, rejecting generic navigation phrases.
func sellerFromProfileAnchor(doc *goquery.Document) string {
	var out string
	doc.Find(`a[href*="seller="]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		label, ok := a.Attr("aria-label")
		if !ok {
			return true
		}
		label = collapseSpace(opensNewPagePattern.ReplaceAllString(label, ""))
		if label == "" || isGenericAnchorPhrase(label) {
			return true
		}
		out = label
		return false
	})
	return out
}

func sellerFromMerchantInfo(doc *goquery.Document) string {
	merchant := doc.Find("#merchant-info").First()
	if merchant.Length() == 0 {
		return ""
	}
	if a := merchant.Find("a").First(); a.Length() > 0 {
		return a.Text()
	}
	if txt := collapseSpace(merchant.Text()); IsOperatorSeller(txt) {
		return txt
	}
	return ""
}

// sellerFromTabularBuybox reads the "Sold by" row of the tabular
// price-comparison widget.
func sellerFromTabularBuybox(doc *goquery.Document) string {
	var out string
	doc.Find("#tabular-buybox .tabular-buybox-text").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := row.Find("span.a-color-secondary").First().Text()
		value := row.Find("span.a-color-base").First().Text()
		if strings.Contains(label, "Sold by") && strings.TrimSpace(value) != "" {
			out = value
			return false
		}
		return true
	})
	return out
}

func sellerFromFreeText(doc *goquery.Document) string {
	text := collapseSpace(doc.Find("body").Text())
	m := freeTextSellerPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return trailingParenPattern.ReplaceAllString(strings.TrimSpace(m[1]), "")
}

// sellerFromOperatorPhrase detects fixed "sold by amazon" phrasing anywhere
// in the document body.
func sellerFromOperatorPhrase(doc *goquery.Document) string {
	if operatorPhrasePattern.MatchString(collapseSpace(doc.Find("body").Text())) {
		return "Amazon"
	}
	return ""
}
