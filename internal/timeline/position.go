// Package timeline maps dated expenses onto an event's start/end axis and
// clusters nearby points into display groups.
//
// Positions are real numbers on a tri-band scale: [0, 100] is within the event
// window, [-20, 0) is a fixed pre-event band (up to 30 days before the start),
// and (100, 120] is a fixed post-event band (up to 30 days after the end).
// The bands let callers render out-of-window expenses without breaking the
// visual axis.
package timeline

import (
	"math"
	"time"
)

const (
	msPerHour = 3_600_000.0
	msPerDay  = 86_400_000.0

	// bandDays is the lookback/lookahead window mapped onto each out-of-window
	// band. Anything further out clamps to the band edge.
	bandDays = 30.0

	// bandWidth is the visual width of each out-of-window band in position units.
	bandWidth = 20.0

	// snapWindow is how close to the start/end marker a date must be before its
	// position snaps to 1 or 99, keeping the rendered dot off the axis markers.
	snapWindow = msPerHour
)

// dateLayouts are tried in order when parsing input timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseMillis converts an ISO-8601 timestamp string to Unix milliseconds.
// Malformed input yields NaN so that downstream comparisons are all false and
// the position falls through to the fallback branch instead of panicking; a
// visually wrong render beats a failed one.
func parseMillis(s string) float64 {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixMilli())
		}
	}
	return math.NaN()
}

// PositionPercentage maps date onto the axis defined by startDate and endDate.
// An empty endDate means the event is open-ended: "now" substitutes for it in
// the ratio math, and the post-event band and end snap never apply.
//
// Branch order matters: the out-of-window bands are checked before the snap
// points, so a date shortly before the start lands in the pre-event band, not
// on the start snap.
func PositionPercentage(date, startDate, endDate string) float64 {
	target := parseMillis(date)
	start := parseMillis(startDate)
	end := float64(time.Now().UnixMilli())
	hasEnd := endDate != ""
	if hasEnd {
		end = parseMillis(endDate)
	}

	if target < start {
		daysBefore := (start - target) / msPerDay
		if daysBefore > bandDays {
			daysBefore = bandDays
		}
		return -(daysBefore / bandDays) * bandWidth
	}

	if hasEnd && target > end {
		daysAfter := (target - end) / msPerDay
		if daysAfter > bandDays {
			daysAfter = bandDays
		}
		return 100 + (daysAfter/bandDays)*bandWidth
	}

	if math.Abs(target-start) < snapWindow {
		return 1
	}
	if hasEnd && math.Abs(target-end) < snapWindow {
		return 99
	}

	if start <= target && (!hasEnd || target <= end) {
		if end == start {
			// Zero-duration event: center the dot.
			return 50
		}
		pos := math.Round((target - start) / (end - start) * 100)
		if pos < 1 {
			pos = 1
		}
		if pos > 99 {
			pos = 99
		}
		return pos
	}

	// Unreachable for well-formed dates; NaN inputs land here.
	return 100
}

// EventProgress returns how far an event has progressed as a percentage in
// [0, 100]. An empty endDate treats "now" as the effective end, so an
// open-ended event that has started always reports 100.
func EventProgress(startDate, endDate string, now time.Time) float64 {
	start := parseMillis(startDate)
	end := float64(now.UnixMilli())
	if endDate != "" {
		end = parseMillis(endDate)
	}
	current := float64(now.UnixMilli())
	if current > end {
		current = end
	}

	if end <= start {
		if current >= start {
			return 100
		}
		return 0
	}
	progress := (current - start) / (end - start) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
