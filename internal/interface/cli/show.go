package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/spf13/cobra"
)

var (
	showLimit  int
	showOffset int
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session and its messages",
	Long: `Print a session's metadata and its messages in chronological order.

Examples:
  parley show 42
  parley show 42 --limit 20 --offset 100`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Maximum number of messages to display (0 = all)")
	showCmd.Flags().IntVar(&showOffset, "offset", 0, "Number of messages to skip")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	session, err := database.GetSession(id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session %d not found", id)
	}

	count, err := database.MessageCount(id)
	if err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}

	fmt.Printf("%s\n", session.Title)
	fmt.Printf("Created: %s | Updated: %s | Messages: %d\n\n",
		humanize.Time(session.CreatedAt), humanize.Time(session.UpdatedAt), count)

	messages, err := database.ListMessages(id, showLimit, showOffset)
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	for _, m := range messages {
		fmt.Printf("[%s] %s\n", strings.ToUpper(string(m.Role)), m.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Println(m.Content)
		fmt.Println()
	}

	return nil
}

func parseSessionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", arg)
	}
	return id, nil
}
