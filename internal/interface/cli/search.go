package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/search"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search sessions by title or message content",
	Long: `Find sessions whose title or message content contains the query,
case-insensitively, most recently active first.

Supports date filter tokens inside the query:
  after:<date>   only sessions active after the date
  before:<date>  only sessions active before the date

Dates accept natural language ("yesterday", "last week") or fixed
formats like 2025-08-01.

Examples:
  parley search flexbox
  parley search "goroutine leak" after:yesterday
  parley search deploy before:2025-08-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of sessions to return")
}

func runSearch(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	results, err := search.Sessions(database, strings.Join(args, " "), searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching sessions.")
		return nil
	}

	fmt.Printf("Found %d session(s)\n\n", len(results))
	for _, s := range results {
		fmt.Printf("[%d] %s\n", s.ID, s.Title)
		fmt.Printf("    Messages: %d | Updated: %s\n\n", s.MessageCount, humanize.Time(s.UpdatedAt))
	}

	return nil
}
