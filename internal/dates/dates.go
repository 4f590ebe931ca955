// Package dates parses the calendar formats accepted across the system.
// The gallery forms write DD/MM/YYYY; older exports carry ISO dates and
// a couple of dashed/dotted variants, all of which must keep loading.
package dates

import (
	"fmt"
	"time"
)

const Display = "02/01/2006"

var acceptedFormats = []string{
	Display,
	"2006-01-02",
	"02-01-2006",
	"02.01.2006",
}

// Parse accepts any of the known formats and returns a date truncated to
// midnight UTC.
func Parse(s string) (time.Time, error) {
	for _, layout := range acceptedFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q (use DD/MM/AAAA)", s)
}

// ParseOptional treats the empty string as "no date".
func ParseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Format renders a date in the display format used by the forms.
func Format(t time.Time) string {
	return t.Format(Display)
}

// FormatOptional renders a nullable date, empty when absent.
func FormatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}
