package amazon

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// Compiled patterns for numeric field extraction.
var (
	currencySymbols = strings.NewReplacer(
		"A$", "", "C$", "",
		"R", "", "£", "", "$", "", "€", "",
		" ", "", " ", "", // non-breaking / narrow no-break space
	)

	digitRunPattern = regexp.MustCompile(`[\d,]+`)
	ratingPattern   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
)

// ParsePrice extracts a numeric amount from localized currency text.
// It handles both space-grouped comma-decimal formats ("R1 660,00") and
// comma-grouped dot-decimal formats ("$1,660.00"). Returns nil when the text
// does not parse to a finite positive number.
func ParsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	cleaned := strings.TrimSpace(currencySymbols.Replace(raw))

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && !hasDot:
		// Space groups thousands, comma is the decimal separator.
		cleaned = strings.ReplaceAll(cleaned, " ", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	default:
		// Comma (if any) groups thousands.
		cleaned = strings.ReplaceAll(cleaned, " ", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) || val <= 0 {
		return nil
	}
	return &val
}

// ParseReviewCount extracts a bare integer from review count text such as
// "(25)" or "1,024 ratings". Enclosing punctuation and grouping commas never
// survive into the result. Returns nil when no digits are present.
func ParseReviewCount(raw string) *int {
	m := digitRunPattern.FindString(raw)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// ParseRating extracts a star rating from text such as "4.3 out of 5 stars".
// Values outside [0,5] are rejected.
func ParseRating(raw string) *float64 {
	m := ratingPattern.FindString(raw)
	if m == "" {
		return nil
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
	if err != nil || val < 0 || val > 5 {
		return nil
	}
	return &val
}

// ParseAvailability classifies free-form availability text into the coarse
// stock enum.
func ParseAvailability(raw string) models.Availability {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case text == "":
		return models.AvailabilityUnknown
	case strings.Contains(text, "temporarily") || strings.Contains(text, "unavailable"):
		return models.TemporarilyUnavailable
	case strings.Contains(text, "out of stock"):
		return models.OutOfStock
	case strings.Contains(text, "in stock"):
		return models.InStock
	default:
		return models.AvailabilityUnknown
	}
}
