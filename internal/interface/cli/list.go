package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/parley-chat/parley/internal/core/config"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/spf13/cobra"
)

var (
	listLimit  int
	listOffset int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Long: `List sessions in reverse chronological order of activity.

Shows titles, ids, message counts, and last-activity timestamps.

Examples:
  parley list
  parley list --limit 10
  parley list --limit 10 --offset 10`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of sessions to display (default from config)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of sessions to skip")
}

func runList(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	limit := listLimit
	if limit <= 0 {
		cfg, _ := config.Load()
		limit = cfg.ListLimit
	}

	summaries, err := database.ListSessions(limit, listOffset)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No sessions found. Run 'parley new' to create one.")
		return nil
	}

	fmt.Printf("Showing %d session(s)\n\n", len(summaries))
	for _, s := range summaries {
		fmt.Printf("[%d] %s\n", s.ID, s.Title)
		fmt.Printf("    Messages: %d\n", s.MessageCount)
		if !s.UpdatedAt.IsZero() {
			fmt.Printf("    Updated: %s\n", humanize.Time(s.UpdatedAt))
		}
		fmt.Println()
	}

	return nil
}
