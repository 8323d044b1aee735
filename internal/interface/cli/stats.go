package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long: `Display statistics about the session store.

Shows session and message counts, activity range, and storage info.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("failed to gather statistics: %w", err)
	}

	fmt.Println("Session Store Statistics")
	fmt.Println("========================")
	fmt.Println()
	fmt.Printf("Total Sessions:    %d\n", stats.TotalSessions)
	fmt.Printf("Total Messages:    %d\n", stats.TotalMessages)

	if !stats.OldestSession.IsZero() {
		fmt.Printf("Oldest Session:    %s\n", humanize.Time(stats.OldestSession))
	}
	if !stats.NewestActivity.IsZero() {
		fmt.Printf("Last Activity:     %s\n", humanize.Time(stats.NewestActivity))
	}
	if stats.BusiestSession != "" {
		fmt.Printf("Busiest Session:   %s (%d messages)\n", stats.BusiestSession, stats.BusiestSessionCount)
	}
	fmt.Printf("Database Path:     %s\n", database.Path())

	return nil
}
