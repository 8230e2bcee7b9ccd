package cmd

import (
	"fmt"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [asin]",
	Short: "Stop tracking a product and delete its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	asin, err := tracker.ExtractASIN(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Remove(asin); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", asin)
	return nil
}
