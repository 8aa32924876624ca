package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	DisplayLayout = "02/01/2006"
	noDate        = "N/A"
)

// Sheet cells arrive in whatever form the spreadsheet serialized them.
var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Jan 2, 2006",
}

// ParseDate reads a date-like value. Epoch milliseconds are accepted.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// JS Date.toString appends the zone name in parentheses.
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

// FormatDate renders a date-like value as dd/mm/yyyy. Unparseable input
// is returned unchanged so nothing the sheet holds is hidden.
func FormatDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return noDate
	}
	t, ok := ParseDate(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return t.Format(DisplayLayout)
}

// RelativeDate renders the age of a date-like value ("3 days ago")
// relative to now, or "" when it cannot be parsed.
func RelativeDate(raw string, now time.Time) string {
	t, ok := ParseDate(raw)
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
