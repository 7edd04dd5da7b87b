// Package timeago formats timestamps as relative "N unit(s) ago" strings.
package timeago

import (
	"fmt"
	"time"
)

// Bucket thresholds in seconds.
const (
	minute = 60
	hour   = 3600
	day    = 86400
	week   = 604800
	month  = 2592000
)

// Format buckets the elapsed time since posted into a relative string.
// The mapping is pure for a given now, so callers may memoize results.
func Format(posted, now time.Time) string {
	seconds := int64(now.Sub(posted).Seconds())
	switch {
	case seconds < minute:
		return "Just now"
	case seconds < hour:
		return plural(seconds/minute, "minute")
	case seconds < day:
		return plural(seconds/hour, "hour")
	case seconds < week:
		return plural(seconds/day, "day")
	case seconds < month:
		return plural(seconds/week, "week")
	default:
		return plural(seconds/month, "month")
	}
}

// Since formats relative to the current time.
func Since(posted time.Time) string {
	return Format(posted, time.Now().UTC())
}

func plural(n int64, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
