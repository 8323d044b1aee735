package cli

import (
	"fmt"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and all its messages",
	Long: `Delete a session. Every message owned by the session is removed in the
same atomic operation; there is no way to delete individual messages.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	ok, err := database.DeleteSession(id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %d not found", id)
	}

	fmt.Printf("Deleted session %d\n", id)
	return nil
}
