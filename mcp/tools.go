package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(s *server.MCPServer, deps Deps) {
	// lookup_buybox
	lookupTool := mcp.NewTool("lookup_buybox",
		mcp.WithDescription("Look up the current buybox price and seller for an Amazon product"),
		mcp.WithString("asin",
			mcp.Required(),
			mcp.Description("ASIN or product page URL"),
		),
		mcp.WithString("marketplace",
			mcp.Description("Marketplace domain (default from config, e.g. amazon.co.za)"),
		),
		mcp.WithBoolean("save",
			mcp.Description("Persist the snapshot and append to price history"),
		),
	)
	s.AddTool(lookupTool, handleLookupBuybox(deps))

	// bulk_lookup
	bulkTool := mcp.NewTool("bulk_lookup",
		mcp.WithDescription("Look up buybox state for multiple ASINs concurrently"),
		mcp.WithString("asins",
			mcp.Required(),
			mcp.Description("Comma-separated ASINs or product URLs"),
		),
		mcp.WithString("marketplace",
			mcp.Description("Marketplace domain (default from config)"),
		),
		mcp.WithBoolean("save",
			mcp.Description("Persist the snapshots and append to price history"),
		),
	)
	s.AddTool(bulkTool, handleBulkLookup(deps))

	// list_tracked
	trackedTool := mcp.NewTool("list_tracked",
		mcp.WithDescription("List all tracked products with their latest buybox snapshot"),
	)
	s.AddTool(trackedTool, handleListTracked(deps))

	// price_history
	historyTool := mcp.NewTool("price_history",
		mcp.WithDescription("Get price and buybox status history for a tracked ASIN, newest first"),
		mcp.WithString("asin",
			mcp.Required(),
			mcp.Description("ASIN or product page URL"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return (default: 100)"),
		),
	)
	s.AddTool(historyTool, handlePriceHistory(deps))

	// remove_asin
	removeTool := mcp.NewTool("remove_asin",
		mcp.WithDescription("Stop tracking an ASIN and delete its history"),
		mcp.WithString("asin",
			mcp.Required(),
			mcp.Description("ASIN or product page URL"),
		),
	)
	s.AddTool(removeTool, handleRemoveASIN(deps))
}

func handleLookupBuybox(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := request.GetString("asin", "")
		if input == "" {
			return mcp.NewToolResultError("asin is required"), nil
		}
		marketplace := request.GetString("marketplace", deps.Marketplace)
		save := request.GetBool("save", false)

		snap, err := deps.Tracker.LookupInput(ctx, input, marketplace)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup error: %v", err)), nil
		}

		if save {
			if err := deps.Store.SaveSnapshot(snap); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("save error: %v", err)), nil
			}
		}

		data, _ := json.MarshalIndent(snap, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleBulkLookup(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := request.GetString("asins", "")
		if raw == "" {
			return mcp.NewToolResultError("asins is required"), nil
		}
		marketplace := request.GetString("marketplace", deps.Marketplace)
		save := request.GetBool("save", false)

		var inputs []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				inputs = append(inputs, part)
			}
		}

		snaps, err := deps.Tracker.BulkLookup(ctx, inputs, marketplace)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("bulk lookup error: %v", err)), nil
		}

		if save {
			for _, snap := range snaps {
				if err := deps.Store.SaveSnapshot(snap); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("save error for %s: %v", snap.ASIN, err)), nil
				}
			}
		}

		data, _ := json.MarshalIndent(snaps, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleListTracked(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snaps, err := deps.Store.ListTracked()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(snaps, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handlePriceHistory(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := request.GetString("asin", "")
		if input == "" {
			return mcp.NewToolResultError("asin is required"), nil
		}
		limit := request.GetInt("limit", 100)

		asin, err := tracker.ExtractASIN(input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid asin: %v", err)), nil
		}

		entries, err := deps.Store.History(asin, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(entries, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleRemoveASIN(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := request.GetString("asin", "")
		if input == "" {
			return mcp.NewToolResultError("asin is required"), nil
		}

		asin, err := tracker.ExtractASIN(input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid asin: %v", err)), nil
		}

		if err := deps.Store.Remove(asin); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("remove error: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf(`{"removed":"%s"}`, asin)), nil
	}
}
