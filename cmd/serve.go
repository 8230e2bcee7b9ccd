package cmd

import (
	"fmt"
	"log"

	mcpserver "github.com/davidbard1226/amazon-buybox-tracker/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting buybox MCP server on stdio...")

	deps := mcpserver.Deps{
		Tracker:     buildTracker(),
		Store:       st,
		Marketplace: cfg.Marketplace,
	}
	if err := mcpserver.Serve(deps); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return nil
}
