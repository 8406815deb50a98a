// Package timefmt renders elapsed durations for display. Negative inputs are
// clamped to zero everywhere, matching the live timer's behavior.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// Compact renders elapsed milliseconds as "1h 2m 3.456s", dropping the
// leading units while they are zero. Milliseconds are always three digits.
func Compact(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	millis := ms % 1000
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %d.%03ds", hours, minutes%60, seconds%60, millis)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %d.%03ds", minutes, seconds%60, millis)
	}
	return fmt.Sprintf("%d.%03ds", seconds, millis)
}

var phraseUnits = []struct {
	name string
	secs int64
}{
	{"year", 365 * 24 * 3600},
	{"month", 30 * 24 * 3600},
	{"day", 24 * 3600},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// Phrase renders a duration with named units, e.g. "2 hours 5 minutes".
// Zero units are skipped; a zero duration reads "0 seconds". Years and
// months use the fixed 365-day and 30-day approximations.
func Phrase(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	secs := int64(d / time.Second)
	var parts []string
	for _, u := range phraseUnits {
		n := secs / u.secs
		if n == 0 {
			continue
		}
		secs -= n * u.secs

		name := u.name
		if n != 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}

	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}

// Clock renders a duration as zero-padded HH:MM:SS. The hour count is total
// elapsed hours and may exceed 24.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
