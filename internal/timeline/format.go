package timeline

import (
	"fmt"
	"time"
)

// parseCivil extracts the calendar date from an ISO-8601 string. Parsing and
// formatting happen in the same location, so the calendar day written in the
// input is the day rendered; no timezone conversion is applied.
func parseCivil(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateRange renders a human-readable date range for axis labels. Four
// formats apply depending on how much the endpoints share:
//
//	no end, or same day:     6/1/2023
//	same month and year:     Jun 1-15, 2023
//	same year:               Jan 1 - Feb 15, 2023
//	different years:         12/1/2022 - 1/15/2023
//
// Malformed start dates render as an empty string; a malformed end date
// degrades to the single-date format.
func FormatDateRange(start, end string) string {
	s, ok := parseCivil(start)
	if !ok {
		return ""
	}
	e, ok := parseCivil(end)
	if !ok {
		return shortDate(s)
	}

	sameDay := s.Year() == e.Year() && s.Month() == e.Month() && s.Day() == e.Day()
	if sameDay {
		return shortDate(s)
	}
	if s.Year() == e.Year() && s.Month() == e.Month() {
		return fmt.Sprintf("%s %d-%d, %d", s.Format("Jan"), s.Day(), e.Day(), s.Year())
	}
	if s.Year() == e.Year() {
		return fmt.Sprintf("%s %d - %s %d, %d", s.Format("Jan"), s.Day(), e.Format("Jan"), e.Day(), s.Year())
	}
	return fmt.Sprintf("%s - %s", shortDate(s), shortDate(e))
}

// FormatTimelineDate renders a compact axis tick label, e.g. "Jun 1".
func FormatTimelineDate(date string) string {
	t, ok := parseCivil(date)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %d", t.Format("Jan"), t.Day())
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
