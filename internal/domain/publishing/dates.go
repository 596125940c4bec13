package publishing

import (
	"strings"
	"time"
)

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date and returns it in UTC.
// Failures are reported as a ValidationError on field.
func ParseDate(field, raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(time.DateOnly, trimmed); err == nil {
		return parsed.UTC(), nil
	}

	return time.Time{}, NewValidationError(field, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
