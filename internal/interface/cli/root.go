package cli

import (
	"fmt"
	"os"

	"github.com/parley-chat/parley/internal/core/config"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Conversation session store",
	Long: `parley - store, browse, search, and export assistant conversations

A persistence layer for conversational sessions: durable SQLite storage
with cascade-safe deletion, auto-titling, substring search, and export to
JSON or Markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDatabasePath(), "Database path")
}

// defaultDatabasePath resolves the database location from config, so a
// database_path set in config.toml takes effect unless --db overrides it.
func defaultDatabasePath() string {
	cfg, _ := config.Load()
	return cfg.DatabasePath
}
