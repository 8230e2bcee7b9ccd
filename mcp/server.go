package mcp

import (
	"github.com/davidbard1226/amazon-buybox-tracker/internal/store"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
	"github.com/mark3labs/mcp-go/server"
)

// Deps carries the wired application services the tools operate on.
type Deps struct {
	Tracker     *tracker.Tracker
	Store       *store.Store
	Marketplace string
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(deps Deps) error {
	s := server.NewMCPServer(
		"amazon-buybox-tracker",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, deps)

	return server.ServeStdio(s)
}
