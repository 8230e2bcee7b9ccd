package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var trackedCmd = &cobra.Command{
	Use:   "tracked",
	Short: "List all tracked products with their latest snapshot",
	RunE:  runTracked,
}

func init() {
	trackedCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(trackedCmd)
}

func runTracked(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snaps, err := st.ListTracked()
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(snaps)
	default:
		printSnapshotsTable(snaps...)
	}

	return nil
}
