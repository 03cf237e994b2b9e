package cli

import (
	"fmt"
	"time"
)

// relativeTime renders an epoch-millisecond timestamp the way the
// notifications screen shows it: "just now", "5m ago", "3h ago", "2d ago".
func relativeTime(millis int64, now time.Time) string {
	d := now.Sub(time.UnixMilli(millis))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
