package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [asin]",
	Short: "Show price history for a tracked product",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 100, "Maximum number of entries")
	historyCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	asin, err := tracker.ExtractASIN(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.History(asin, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "no history for %s\n", asin)
		return nil
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(entries)
	default:
		printHistoryTable(entries)
	}

	return nil
}
