package util

import (
	"math"

	"github.com/rs/zerolog"
)

// LogProgress takes a total and returns a function that logs completion in
// ten-percent increments as it is called with successive indexes. Useful for
// long loads where silence looks like a hang.
func LogProgress(msg string, total int, logger zerolog.Logger) func(currentIndex int) {
	logThreshold := float64(0)
	return func(currentIndex int) {
		percentage := float64(100)
		if total > 0 {
			percentage = (float64(currentIndex+1) / float64(total)) * 100.
		}

		// report every 10 percent
		if percentage >= logThreshold {
			logger.Info().Msgf("%s completion percentage: %v percent", msg, math.Floor(percentage))
			logThreshold += 10
		}
	}
}
