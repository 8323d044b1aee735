package cli

import (
	"fmt"
	"strings"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/models"
	"github.com/parley-chat/parley/internal/core/title"
	"github.com/spf13/cobra"
)

var addRole string

var addCmd = &cobra.Command{
	Use:   "add <session-id> <content...>",
	Short: "Append a message to a session",
	Long: `Append a message to an existing session.

This is the single write path for conversation turns: the chat frontend
stores the user turn through it, then the assistant turn once streaming
completes. After the first full exchange (second stored message), the
session title is derived from the first user message.

Examples:
  parley add 42 "How do I center a div in CSS?"
  parley add 42 --role assistant "Use flexbox..."`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addRole, "role", "user", "Message role: user, assistant, or system")
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}
	content := strings.Join(args[1:], " ")

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	msg, err := database.AppendMessage(id, models.Role(addRole), content, nil)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	// One-shot titling: derive exactly when the first exchange completes,
	// so a later manual rename is never clobbered.
	count, err := database.MessageCount(id)
	if err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}
	if count == 2 {
		if _, err := title.Derive(database, id); err != nil {
			return fmt.Errorf("failed to derive title: %w", err)
		}
	}

	fmt.Printf("Appended message %d to session %d\n", msg.ID, id)
	return nil
}
