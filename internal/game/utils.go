package game

import (
	"fmt"
	"time"

	"github.com/radialglo/wisp/internal/wisp"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// levelBar renders a 0..1 level as a fixed-width text meter for the debug HUD.
func levelBar(level float64, width int) string {
	filled := int(wisp.Clamp01(level)*float64(width) + 0.5)
	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '.'
		}
	}
	return "[" + string(bar) + "]"
}
