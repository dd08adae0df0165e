package repository

import (
	"time"
)

// dateLayout is the ISO format for storing calendar dates in SQLite
const dateLayout = "2006-01-02"

// parseDate parses a stored calendar date into UTC midnight
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// formatDate formats a calendar date for storage
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
