package progress

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// formatElapsed renders d rounded to whole seconds, e.g. "1h2m3s".
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}

// subject names the watched process by label, or by pid without one.
func subject(info SessionInfo) string {
	if info.Label != "" {
		return info.Label
	}
	return fmt.Sprintf("process %d", info.PID)
}

// buildWatchMessage constructs the status line for a running session
func buildWatchMessage(info SessionInfo, elapsed time.Duration, width int) string {
	msg := fmt.Sprintf("Watching %s (%s)", subject(info), formatElapsed(elapsed))
	if info.Continuous {
		msg += fmt.Sprintf(", progress every %s", info.Interval)
	}
	return truncate(msg, width)
}

// truncate shortens s to fit a terminal of the given width, leaving room
// for the spinner glyph. A width of 0 means unknown.
func truncate(s string, width int) string {
	limit := width - 3
	if width <= 0 || limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Checkmark
	if supportsColor && symbols.Checkmark == "✓" {
		mark = "\033[32m" + mark + "\033[0m" // Green
	}
	return mark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Failure
	if supportsColor && symbols.Failure == "✗" {
		mark = "\033[31m" + mark + "\033[0m" // Red
	}
	return mark
}
