package helpers

import (
	"fmt"
	"math"
)

// FormatSleepDuration renders fractional hours as "8 hours" or "7 hours 30 min".
func FormatSleepDuration(hours float64) string {
	whole := math.Floor(hours)
	minutes := int(math.Round((hours - whole) * 60))
	if minutes == 0 {
		return fmt.Sprintf("%d hours", int(whole))
	}
	return fmt.Sprintf("%d hours %d min", int(whole), minutes)
}
