package cli

import (
	"fmt"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/spf13/cobra"
)

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Reclaim space left by deleted sessions",
	RunE:  runCompact,
}

func init() {
	rootCmd.AddCommand(compactCmd)
}

func runCompact(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	if err := database.Vacuum(); err != nil {
		return fmt.Errorf("failed to compact database: %w", err)
	}

	fmt.Println("Database compacted.")
	return nil
}
