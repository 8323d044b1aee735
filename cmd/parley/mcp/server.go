package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/export"
	"github.com/parley-chat/parley/internal/core/models"
	"github.com/parley-chat/parley/internal/core/search"
)

// SearchSessionsArgs defines arguments for the search_sessions tool
type SearchSessionsArgs struct {
	Query      string `json:"query" jsonschema:"description=Search term to match against session titles and message content,required"`
	Limit      int    `json:"limit,omitempty" jsonschema:"description=Max number of sessions to return (default: 10)"`
	AfterDate  string `json:"after_date,omitempty" jsonschema:"description=Only sessions active after this date (ISO 8601 format, e.g. 2025-01-01)"`
	BeforeDate string `json:"before_date,omitempty" jsonschema:"description=Only sessions active before this date (ISO 8601 format)"`
}

// ListRecentSessionsArgs defines arguments for the list_recent_sessions tool
type ListRecentSessionsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Max sessions to return (default: 20)"`
}

// GetSessionArgs defines arguments for the get_session tool
type GetSessionArgs struct {
	SessionID int64 `json:"session_id" jsonschema:"description=Session ID to retrieve,required"`
}

// AppendMessageArgs defines arguments for the append_message tool
type AppendMessageArgs struct {
	SessionID int64  `json:"session_id" jsonschema:"description=Session ID to append to,required"`
	Role      string `json:"role" jsonschema:"description=Message role: user, assistant, or system,required"`
	Content   string `json:"content" jsonschema:"description=Message content,required"`
}

// ExportSessionArgs defines arguments for the export_session tool
type ExportSessionArgs struct {
	SessionID int64  `json:"session_id" jsonschema:"description=Session ID to export,required"`
	Format    string `json:"format,omitempty" jsonschema:"description=Export format: markdown or json (default: markdown)"`
}

// SessionSummary represents a session in list and search results
type SessionSummary struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
}

// StartServer starts the MCP server on stdio
func StartServer(dbPath string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	s := server.NewMCPServer(
		"parley",
		"1.0.0",
	)

	searchTool := mcp.NewTool("search_sessions",
		mcp.WithDescription("Search stored conversation sessions. Matches the query against session titles and message content, case-insensitively, most recently active first. Supports date bounds."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to match against session titles and message content")),
		mcp.WithNumber("limit",
			mcp.Description("Max number of sessions to return (default: 10)")),
		mcp.WithString("after_date",
			mcp.Description("Only sessions active after this date (ISO 8601 format, e.g. '2025-01-01')")),
		mcp.WithString("before_date",
			mcp.Description("Only sessions active before this date (ISO 8601 format)")),
	)
	s.AddTool(searchTool, makeSearchSessionsHandler(database))

	listTool := mcp.NewTool("list_recent_sessions",
		mcp.WithDescription("List stored conversation sessions, most recently active first"),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to return (default: 20)")),
	)
	s.AddTool(listTool, makeListRecentSessionsHandler(database))

	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Retrieve a session with its full ordered message log"),
		mcp.WithNumber("session_id",
			mcp.Required(),
			mcp.Description("Session ID to retrieve")),
	)
	s.AddTool(getTool, makeGetSessionHandler(database))

	appendTool := mcp.NewTool("append_message",
		mcp.WithDescription("Append a message to an existing session"),
		mcp.WithNumber("session_id",
			mcp.Required(),
			mcp.Description("Session ID to append to")),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("Message role: user, assistant, or system")),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Message content")),
	)
	s.AddTool(appendTool, makeAppendMessageHandler(database))

	exportTool := mcp.NewTool("export_session",
		mcp.WithDescription("Export a session as Markdown or a structured JSON document"),
		mcp.WithNumber("session_id",
			mcp.Required(),
			mcp.Description("Session ID to export")),
		mcp.WithString("format",
			mcp.Description("Export format: markdown or json (default: markdown)")),
	)
	s.AddTool(exportTool, makeExportSessionHandler(database))

	return server.ServeStdio(s)
}

func decodeArgs(request mcp.CallToolRequest, out any) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, out)
}

func parseBound(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func summarize(sessions []models.SessionSummary) []SessionSummary {
	out := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionSummary{
			ID:           s.ID,
			Title:        s.Title,
			UpdatedAt:    s.UpdatedAt.Format("2006-01-02 15:04:05"),
			MessageCount: s.MessageCount,
		})
	}
	return out
}

func makeSearchSessionsHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchSessionsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 10
		}

		filters := search.Filters{Query: args.Query}
		if args.AfterDate != "" {
			if t, ok := parseBound(args.AfterDate); ok {
				filters.After = t
				filters.HasAfter = true
			} else {
				return mcp.NewToolResultError(fmt.Sprintf("unparseable after_date: %q", args.AfterDate)), nil
			}
		}
		if args.BeforeDate != "" {
			if t, ok := parseBound(args.BeforeDate); ok {
				filters.Before = t
				filters.HasBefore = true
			} else {
				return mcp.NewToolResultError(fmt.Sprintf("unparseable before_date: %q", args.BeforeDate)), nil
			}
		}

		results, err := search.WithFilters(database, filters, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(map[string]any{
			"sessions": summarize(results),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeListRecentSessionsHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListRecentSessionsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		sessions, err := database.ListSessions(limit, 0)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(map[string]any{
			"sessions": summarize(sessions),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeGetSessionHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetSessionArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		doc, err := export.Structured(database, args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}
		if doc == nil {
			return mcp.NewToolResultError(fmt.Sprintf("session %d not found", args.SessionID)), nil
		}

		resultJSON, err := json.Marshal(doc)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeAppendMessageHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AppendMessageArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		msg, err := database.AppendMessage(args.SessionID, models.Role(args.Role), args.Content, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("append failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(map[string]any{
			"message_id": msg.ID,
			"session_id": msg.SessionID,
			"timestamp":  msg.Timestamp.Format("2006-01-02 15:04:05"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeExportSessionHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ExportSessionArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		switch args.Format {
		case "json":
			doc, err := export.Structured(database, args.SessionID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
			}
			if doc == nil {
				return mcp.NewToolResultError(fmt.Sprintf("session %d not found", args.SessionID)), nil
			}
			resultJSON, err := json.Marshal(doc)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
			}
			return mcp.NewToolResultText(string(resultJSON)), nil

		case "", "markdown", "md":
			rendered, err := export.Markdown(database, args.SessionID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
			}
			if rendered == "" {
				return mcp.NewToolResultError(fmt.Sprintf("session %d not found", args.SessionID)), nil
			}
			return mcp.NewToolResultText(rendered), nil

		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (want markdown or json)", args.Format)), nil
		}
	}
}
