package cmd

import (
	"fmt"
	"os"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/amazon"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// printSnapshotsTable prints snapshots in a human-friendly card layout.
func printSnapshotsTable(snaps ...models.ProductSnapshot) {
	for i, s := range snaps {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		title := s.Title
		if title == "" {
			title = "(no title)"
		}
		fmt.Fprintf(os.Stdout, " %d. [%s] %s\n", i+1, s.ASIN, truncate(title, 70))

		priceLine := "    Price: " + formatPrice(s.Price, s.Currency)
		priceLine += "  |  Seller: " + s.Seller
		if s.IsAmazonSeller {
			priceLine += " [Amazon]"
		}
		fmt.Fprintln(os.Stdout, priceLine)

		statusLine := "    Buybox: " + statusBadge(s.BuyboxStatus)
		if s.Availability != models.AvailabilityUnknown {
			statusLine += "  |  " + string(s.Availability)
		}
		fmt.Fprintln(os.Stdout, statusLine)

		if s.Rating != nil {
			ratingLine := fmt.Sprintf("    Rating: %.1f/5", *s.Rating)
			if s.ReviewCount != nil {
				ratingLine += fmt.Sprintf(" (%d reviews)", *s.ReviewCount)
			}
			fmt.Fprintln(os.Stdout, ratingLine)
		}
		fmt.Fprintf(os.Stdout, "    https://www.%s/dp/%s\n", s.Marketplace, s.ASIN)
	}
}

// printHistoryTable prints price history entries newest-first.
func printHistoryTable(entries []models.HistoryEntry) {
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, " %s  %-10s  %-9s  %s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			formatPrice(e.Price, amazon.CurrencyForMarketplace(e.Marketplace)),
			e.Status,
			e.Seller)
	}
}

func statusBadge(s models.BuyboxStatus) string {
	switch s {
	case models.StatusWinning:
		return "WINNING"
	case models.StatusLosing:
		return "LOSING"
	case models.StatusAmazon:
		return "AMAZON"
	default:
		return "UNKNOWN"
	}
}

// formatPrice formats a nullable price as "1660.00 ZAR" or "-".
func formatPrice(p *float64, currency string) string {
	if p == nil {
		return "-"
	}
	if currency == "" {
		return fmt.Sprintf("%.2f", *p)
	}
	return fmt.Sprintf("%.2f %s", *p, currency)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
