package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the tracked product set",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(stats)
		return nil
	}

	fmt.Printf(" Tracked products:  %d\n", stats.TotalTracked)
	fmt.Printf(" Amazon holds:      %d\n", stats.AmazonWins)
	fmt.Printf(" Third-party holds: %d\n", stats.ThirdPartyWins)
	fmt.Printf(" Avg buybox price:  %.2f\n", stats.AvgBuyboxPrice)
	return nil
}
