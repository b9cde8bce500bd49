package reltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	now := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"zero", 0, "just now"},
		{"future", -time.Hour, "just now"},
		{"seconds", 59 * time.Second, "just now"},
		{"one minute", 60 * time.Second, "1 minute ago"},
		{"ninety seconds", 90 * time.Second, "1 minute ago"},
		{"minutes", 59 * time.Minute, "59 minutes ago"},
		{"one hour", time.Hour, "1 hour ago"},
		{"hours", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"one day", 25 * time.Hour, "1 day ago"},
		{"days", 6 * day, "6 days ago"},
		{"week", 7 * day, "Oct 7, 2026"},
		{"older", 30 * day, "Sep 14, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(now.Add(-tt.ago), now))
		})
	}
}
