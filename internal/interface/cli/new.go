package cli

import (
	"fmt"
	"strings"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new session",
	Long: `Create a new conversation session.

Without a title, a placeholder derived from the creation time is used;
it gets replaced automatically once the first exchange is recorded.

Examples:
  parley new
  parley new "Flexbox debugging"`,
	Args: cobra.ArbitraryArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	session, err := database.CreateSession(strings.Join(args, " "), nil)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	fmt.Printf("Created session %d: %s\n", session.ID, session.Title)
	return nil
}
