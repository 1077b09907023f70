package partner

import (
	"fmt"
	"time"
)

// Partner wire formats. Dates travel as YYYY-MM-DD; date-times in the
// partner's combined format without a timezone (interpreted as UTC).
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"

	// The partner sends these literals for unset date fields.
	emptyDate     = "0000-00-00"
	emptyDateTime = "0000-00-00 00:00:00"
)

// parseDate converts a partner date string. Unset markers yield the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" || s == emptyDate {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse partner date %q: %w", s, err)
	}
	return t, nil
}

// parseDateTime converts a partner date-time string. Unset markers yield the
// zero time.
func parseDateTime(s string) (time.Time, error) {
	if s == "" || s == emptyDateTime {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse partner datetime %q: %w", s, err)
	}
	return t, nil
}

// formatDate renders a date for outbound payloads.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
