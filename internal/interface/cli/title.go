package cli

import (
	"fmt"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/title"
	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title <session-id>",
	Short: "Re-derive a session title from its first user message",
	Long: `Derive the session title from its first user message: whitespace is
collapsed and the result truncated to the display budget.

Note this overwrites a manual rename; the automatic one-shot derivation
happens only when the first exchange completes.`,
	Args: cobra.ExactArgs(1),
	RunE: runTitle,
}

func init() {
	rootCmd.AddCommand(titleCmd)
}

func runTitle(cmd *cobra.Command, args []string) error {
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

	ok, err := title.Derive(database, id)
	if err != nil {
		return fmt.Errorf("failed to derive title: %w", err)
	}
	if !ok {
		fmt.Printf("Session %d has no user message to derive a title from\n", id)
		return nil
	}

	session, err := database.GetSession(id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	fmt.Printf("Session %d titled: %s\n", id, session.Title)
	return nil
}
