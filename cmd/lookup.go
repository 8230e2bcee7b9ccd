package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/ui"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [asin-or-url]",
	Short: "Look up the current buybox state for a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().String("format", "json", "Output format: json, table")
	lookupCmd.Flags().Bool("save", false, "Persist the snapshot to the database")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	tr := buildTracker()

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Looking up %s on %s...", args[0], cfg.Marketplace))
	ctx := tracker.WithProgress(context.Background(), spin.Update)
	snap, err := tr.LookupInput(ctx, args[0], cfg.Marketplace)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveSnapshot(snap); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
	}

	switch format {
	case "table":
		printSnapshotsTable(snap)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(snap)
	}

	return nil
}
