// Package search filters sessions by substring match over titles and
// message content. It is deliberately a filter ordered by recency, not a
// ranked search engine.
package search

import (
	"fmt"
	"strings"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/models"
)

const defaultLimit = 20

// Sessions parses filter tokens out of rawQuery and returns summaries of
// sessions whose title or message content contains the remaining text,
// case-insensitively, most recently active first. A session matching via
// both its title and its messages appears once.
func Sessions(database *db.DB, rawQuery string, limit int) ([]models.SessionSummary, error) {
	return WithFilters(database, ParseQuery(rawQuery), limit)
}

// WithFilters runs a search with already-parsed filters.
func WithFilters(database *db.DB, f Filters, limit int) ([]models.SessionSummary, error) {
	query := strings.TrimSpace(f.Query)
	if query == "" && !f.HasAfter && !f.HasBefore {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	// EXISTS keeps one row per session regardless of how many of its
	// messages match. SQLite LIKE is case-insensitive for ASCII; the
	// query is escaped so % and _ match literally, not as wildcards.
	pattern := escapeLike(query)
	sqlQuery := `
		SELECT
			s.id,
			s.title,
			(SELECT COUNT(*) FROM messages WHERE session_id = s.id) AS message_count,
			s.updated_at
		FROM sessions s
		WHERE (s.title LIKE '%' || ? || '%' ESCAPE '\'
			OR EXISTS (
				SELECT 1 FROM messages m
				WHERE m.session_id = s.id
				  AND m.content LIKE '%' || ? || '%' ESCAPE '\'
			))`
	args := []any{pattern, pattern}

	if f.HasAfter {
		sqlQuery += " AND s.updated_at > ?"
		args = append(args, f.After.UTC())
	}
	if f.HasBefore {
		sqlQuery += " AND s.updated_at < ?"
		args = append(args, f.Before.UTC())
	}

	sqlQuery += `
		ORDER BY s.updated_at DESC, s.id DESC
		LIMIT ?`
	args = append(args, limit)

	rows, err := database.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.SessionSummary
	for rows.Next() {
		var s models.SessionSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.MessageCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
