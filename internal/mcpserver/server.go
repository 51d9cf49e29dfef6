// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the recall API as tools for LLM integration via stdio transport.
// Tools go through the HTTP client, so the MCP process needs a running
// backend but no direct access to the captures directory or the index.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nordvik/glance/internal/client"
)

// Server wraps the MCP server with the recall tools.
type Server struct {
	mcp *server.MCPServer
	api *client.Client
}

// New creates a new MCP server with all recall tools registered.
func New(api *client.Client, version string) *Server {
	s := &Server{api: api}

	s.mcp = server.NewMCPServer(
		"Glance",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_recall",
		mcp.WithDescription("Full-text search through captured screen activity "+
			"(OCR text, window titles, app names). Results are ranked by relevance."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchRecall)

	s.mcp.AddTool(mcp.NewTool("recent_entries",
		mcp.WithDescription("List the most recent screen captures, newest first."),
		mcp.WithNumber("limit", mcp.Description("Number of entries to return (default 20)")),
		mcp.WithString("app", mcp.Description("Optional application name filter")),
	), s.recentEntries)

	s.mcp.AddTool(mcp.NewTool("get_entry",
		mcp.WithDescription("Fetch a single capture by id, including its full OCR text."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Entry id")),
	), s.getEntry)

	s.mcp.AddTool(mcp.NewTool("recorder_status",
		mcp.WithDescription("Report whether the recorder is currently capturing, "+
			"paused, or inactive, and when the last capture happened."),
	), s.recorderStatus)

	s.mcp.AddTool(mcp.NewTool("activity_stats",
		mcp.WithDescription("Aggregate statistics: total captures, storage used, "+
			"busiest applications, and activity by hour of day."),
	), s.activityStats)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchRecall(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", client.DefaultSearchLimit)

	resp, err := s.api.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(resp.Results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) recentEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)
	app := req.GetString("app", "")

	resp, err := s.api.Entries(ctx, client.EntriesQuery{Page: 1, Limit: limit, App: app})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(resp.Entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, err := s.api.Entry(ctx, int64(id))
	if err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == 404 {
			return mcp.NewToolResultError(fmt.Sprintf("entry not found: %d", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(entry, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) recorderStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.api.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(st, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) activityStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.api.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
