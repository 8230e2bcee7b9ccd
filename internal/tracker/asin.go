package tracker

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bareASINPattern = regexp.MustCompile(`(?i)^[A-Z0-9]{10}$`)
	urlASINPattern  = regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})`)
)

// ExtractASIN normalizes user input into an uppercase 10-character ASIN.
// It accepts either a bare identifier or a product URL containing /dp/{asin}.
func ExtractASIN(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty ASIN")
	}
	if bareASINPattern.MatchString(raw) {
		return strings.ToUpper(raw), nil
	}
	if m := urlASINPattern.FindStringSubmatch(raw); m != nil {
		return strings.ToUpper(m[1]), nil
	}
	return "", fmt.Errorf("could not extract ASIN from %q", raw)
}
