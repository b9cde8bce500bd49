// Package reltime renders human readable relative time labels.
package reltime

import (
	"fmt"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day

	// DateLayout is used for instants older than a week
	DateLayout = "Jan 2, 2006"
)

// Format returns label of t relative to now. Instants in the future
// are reported as "just now".
func Format(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return ago(int(diff/time.Minute), "minute")
	case diff < day:
		return ago(int(diff/time.Hour), "hour")
	case diff < week:
		return ago(int(diff/day), "day")
	}

	return t.In(now.Location()).Format(DateLayout)
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}

	return fmt.Sprintf("%d %ss ago", n, unit)
}
