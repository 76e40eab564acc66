package formater

import (
	"fmt"
	"time"
)

const (
	secondsPerDay  = 24 * 60 * 60
	daysPerYear    = 365
	GeneratedOnFmt = "2006-01-02 15:04:05"
)

// HumanizeSince renders the time passed between since and now, "Never" for a zero since.
func HumanizeSince(since, now time.Time) string {
	if since.IsZero() {
		return "Never"
	}

	return HumanizeElapsed(now.Sub(since))
}

// HumanizeElapsed renders the two largest units of elapsed, always rounded down.
func HumanizeElapsed(elapsed time.Duration) string {
	total := int64(elapsed / time.Second)
	if total < 0 {
		total = 0
	}

	days := total / secondsPerDay
	var years int64
	if days >= daysPerYear {
		years = days / daysPerYear
		days -= years * daysPerYear
	}

	rest := total % secondsPerDay
	hours := rest / 3600
	rest %= 3600
	minutes := rest / 60
	seconds := rest % 60

	switch {
	case years > 0:
		if days > 0 {
			return fmt.Sprintf("%dy %dd ago", years, days)
		}
		return fmt.Sprintf("%dy ago", years)
	case days > 0:
		if hours > 0 {
			return fmt.Sprintf("%dd %dh ago", days, hours)
		}
		return fmt.Sprintf("%dd ago", days)
	case hours > 0:
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm ago", hours, minutes)
		}
		return fmt.Sprintf("%dh ago", hours)
	case minutes > 0:
		if seconds > 0 {
			return fmt.Sprintf("%dm %ds ago", minutes, seconds)
		}
		return fmt.Sprintf("%ds ago", seconds)
	case seconds > 0:
		return fmt.Sprintf("%ds ago", seconds)
	}

	return "a few seconds ago"
}

// GeneratedOn is the footer stamp, rendered in the server's local time zone.
func GeneratedOn(t time.Time) string {
	return "GENERATED ON " + t.Local().Format(GeneratedOnFmt)
}
