package logging

import (
	"math"
	"time"

	"github.com/docker/go-units"
)

func RoundMS(d time.Duration) float64 {
	const (
		maxDuration time.Duration = 1<<63 - 1
		milliSecond               = float64(time.Millisecond)
	)

	if d == maxDuration {
		return 0.0
	}

	return math.Round((float64(d)/milliSecond)*1000) / 1000
}

// HumanSize formats artifact sizes for log fields, e.g. 12.3kB.
func HumanSize(size int64) string {
	return units.HumanSizeWithPrecision(float64(size), 3)
}
