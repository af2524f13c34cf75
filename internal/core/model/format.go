package model

import (
	"fmt"
	"time"
)

// FormatClock renders a remaining duration as MM:SS. Minutes are not capped
// at 59 and negative values render as 00:00.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
