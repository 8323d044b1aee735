package cli

import (
	"fmt"
	"strings"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <session-id> <title...>",
	Short: "Rename a session",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}
	newTitle := strings.Join(args[1:], " ")

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	ok, err := database.UpdateSession(id, db.SessionUpdate{Title: &newTitle})
	if err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %d not found", id)
	}

	fmt.Printf("Renamed session %d to: %s\n", id, newTitle)
	return nil
}
