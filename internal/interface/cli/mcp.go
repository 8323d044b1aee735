package cli

import (
	"github.com/parley-chat/parley/cmd/parley/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Run as an MCP server over stdio",
	Long: `Expose the session store to MCP clients over stdio.

Tools: search_sessions, list_recent_sessions, get_session,
append_message, export_session.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	return mcp.StartServer(dbPath)
}
