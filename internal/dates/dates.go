// Package dates centralizes the timestamp forms used in record files.
package dates

import (
	"fmt"
	"time"
)

// Rendered fragment layouts.
const (
	// Day is the form used for due and completion stamps in the log.
	Day = "2006-01-02"
	// Minute is the form used in note annotations and document footers.
	Minute = "2006-01-02 15:04"
)

// parseLayouts are the accepted header timestamp forms, most specific
// first. Hand-edited files commonly drop the timezone or the time part.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	Day,
}

// Format renders t in the canonical header form (RFC 3339).
func Format(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Parse reads a header timestamp in any accepted form.
func Parse(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("dates: unrecognized timestamp %q", s)
}
