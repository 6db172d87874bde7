package utils

import (
	"strings"
	"time"
)

// dueDateLayouts are tried in order when parsing due dates from uploaded
// records. The source files in the wild use ISO dates, full timestamps and
// the occasional slash-separated form.
var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a raw date string into a calendar date (UTC, midnight).
// Returns false when no known layout matches.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
