package search

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Filters represents parsed filters from a search query
type Filters struct {
	Query     string    // The actual search text
	After     time.Time // Only sessions active after this time
	Before    time.Time // Only sessions active before this time
	HasAfter  bool
	HasBefore bool
}

// ParseQuery extracts filters from a raw search query string.
// Supports:
//   - after:yesterday, after:2025-08-01 - sessions active after a date
//   - before:last-week, before:2025-08-01 - sessions active before a date
//
// Everything else is the search text.
func ParseQuery(raw string) Filters {
	filters := Filters{}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	tokens := strings.Fields(raw)
	var queryParts []string

	for _, token := range tokens {
		if strings.HasPrefix(token, "after:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "after:")); parsed != nil {
				filters.After = *parsed
				filters.HasAfter = true
			}
			continue
		}

		if strings.HasPrefix(token, "before:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "before:")); parsed != nil {
				filters.Before = *parsed
				filters.HasBefore = true
			}
			continue
		}

		queryParts = append(queryParts, token)
	}

	filters.Query = strings.Join(queryParts, " ")
	return filters
}

// parseDate attempts natural language parsing first, then fixed formats.
func parseDate(w *when.Parser, dateStr string) *time.Time {
	result, err := w.Parse(dateStr, time.Now())
	if err == nil && result != nil {
		return &result.Time
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}
