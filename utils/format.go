package utils

import (
	"fmt"
	"math"
)

// Presentation formatting for statistics counters. The mobile app renders
// these strings verbatim.

// FormatDistance renders kilometers with two decimals, e.g. "12.50 km".
func FormatDistance(distanceKm float64) string {
	return fmt.Sprintf("%.2f km", distanceKm)
}

// FormatTime renders total minutes as "H:MM".
func FormatTime(totalMinutes int) string {
	if totalMinutes <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// FormatElevation renders meters rounded to a whole number, e.g. "340 m".
func FormatElevation(elevationM float64) string {
	return fmt.Sprintf("%d m", int(math.Round(elevationM)))
}

// FormatPace renders minutes per kilometer as "M:SS /km".
func FormatPace(paceMinutesPerKm float64) string {
	if paceMinutesPerKm <= 0 {
		return "0:00 /km"
	}
	minutes := int(math.Floor(paceMinutesPerKm))
	seconds := int(math.Round((paceMinutesPerKm - float64(minutes)) * 60))
	if seconds >= 60 {
		minutes += seconds / 60
		seconds = seconds % 60
	}
	return fmt.Sprintf("%d:%02d /km", minutes, seconds)
}

// FormatAveragePace derives the pace from total distance and time.
// Zero distance or time yields "0:00 /km".
func FormatAveragePace(distanceKm float64, totalMinutes int) string {
	if distanceKm == 0 || totalMinutes == 0 {
		return "0:00 /km"
	}
	return FormatPace(float64(totalMinutes) / distanceKm)
}
