package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/ui"
	"github.com/spf13/cobra"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk [asin ...]",
	Short: "Look up multiple products concurrently",
	RunE:  runBulk,
}

func init() {
	bulkCmd.Flags().String("file", "", "File with one ASIN or product URL per line")
	bulkCmd.Flags().String("format", "json", "Output format: json, table")
	bulkCmd.Flags().Bool("save", false, "Persist snapshots to the database")
	rootCmd.AddCommand(bulkCmd)
}

func runBulk(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")
	file, _ := cmd.Flags().GetString("file")

	inputs := args
	if file != "" {
		fromFile, err := readLines(file)
		if err != nil {
			return err
		}
		inputs = append(inputs, fromFile...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no ASINs given: pass them as arguments or via --file")
	}

	tr := buildTracker()

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Looking up %d products on %s...", len(inputs), cfg.Marketplace))
	ctx := tracker.WithProgress(context.Background(), spin.Update)
	snaps, err := tr.BulkLookup(ctx, inputs, cfg.Marketplace)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("bulk lookup failed: %w", err)
	}

	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		for _, snap := range snaps {
			if err := st.SaveSnapshot(snap); err != nil {
				fmt.Fprintf(os.Stderr, "save %s: %v\n", snap.ASIN, err)
			}
		}
	}

	switch format {
	case "table":
		printSnapshotsTable(snaps...)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(snaps)
	}

	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
