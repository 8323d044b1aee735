package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Stats represents database statistics
type Stats struct {
	TotalSessions       int
	TotalMessages       int
	OldestSession       time.Time
	NewestActivity      time.Time
	BusiestSession      string
	BusiestSessionCount int
}

// GetStats returns aggregate statistics for the whole store.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&stats.TotalSessions)
	if err != nil {
		return nil, err
	}

	err = db.conn.QueryRow("SELECT COUNT(*) FROM messages").Scan(&stats.TotalMessages)
	if err != nil {
		return nil, err
	}

	if stats.TotalSessions > 0 {
		var minCreated, maxUpdated sql.NullString
		err = db.conn.QueryRow("SELECT MIN(created_at), MAX(updated_at) FROM sessions").Scan(&minCreated, &maxUpdated)
		if err != nil {
			return nil, err
		}
		if minCreated.Valid {
			stats.OldestSession = parseStoredTime(minCreated.String)
		}
		if maxUpdated.Valid {
			stats.NewestActivity = parseStoredTime(maxUpdated.String)
		}

		// Session with the most messages
		var busiest sql.NullString
		err = db.conn.QueryRow(`
			SELECT s.title, COUNT(m.id) AS count
			FROM sessions s
			JOIN messages m ON m.session_id = s.id
			GROUP BY s.id
			ORDER BY count DESC
			LIMIT 1
		`).Scan(&busiest, &stats.BusiestSessionCount)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if busiest.Valid {
			stats.BusiestSession = busiest.String
		}
	}

	return stats, nil
}

// Vacuum rebuilds the database file, reclaiming space left by deleted
// sessions.
func (db *DB) Vacuum() error {
	if _, err := db.conn.Exec("VACUUM"); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}

// parseStoredTime parses a timestamp scanned from an aggregate, where the
// driver returns text instead of a time value.
func parseStoredTime(s string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
