// Package title derives a human-meaningful session title from the first
// user message, replacing the timestamp placeholder a session starts with.
package title

import (
	"strings"

	"github.com/parley-chat/parley/internal/core/db"
)

// DisplayBudget is the maximum rendered title length in runes.
const DisplayBudget = 60

const ellipsis = "..."

// Derive rewrites the session title from its first user message. Returns
// false without touching the session when there is no usable message.
//
// Derive is idempotent: the same first message always produces the same
// title. It is not gated — a caller that wants one-shot behavior (so a
// later manual rename survives) invokes it once, after the first full
// exchange has been recorded.
func Derive(database *db.DB, sessionID int64) (bool, error) {
	msg, err := database.FirstUserMessage(sessionID)
	if err != nil {
		return false, err
	}
	if msg == nil {
		return false, nil
	}

	derived := FromContent(msg.Content)
	if derived == "" {
		return false, nil
	}

	return database.UpdateSession(sessionID, db.SessionUpdate{Title: &derived})
}

// FromContent collapses all whitespace runs to single spaces and
// truncates to the display budget, appending an ellipsis marker so the
// result is exactly DisplayBudget runes when truncation happens.
func FromContent(content string) string {
	collapsed := strings.Join(strings.Fields(content), " ")

	runes := []rune(collapsed)
	if len(runes) <= DisplayBudget {
		return collapsed
	}
	return string(runes[:DisplayBudget-len(ellipsis)]) + ellipsis
}
