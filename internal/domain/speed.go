package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	MinSpeed     = 1
	MaxSpeed     = 11
	DefaultSpeed = 5
)

// DefaultBaseInterval is the tick interval at speed 1
const DefaultBaseInterval = time.Second

var speedMultipliers = [...]float64{1.0, 0.67, 0.5, 0.4, 0.33, 0.29, 0.25, 0.22, 0.2, 0.18, 0.17}

// Speed selects the real-time playback rate. It never affects day arithmetic.
type Speed int

// ParseSpeed validates a speed in [MinSpeed, MaxSpeed]
func ParseSpeed(n int) (Speed, error) {
	if n < MinSpeed || n > MaxSpeed {
		return 0, fmt.Errorf("speed %d out of range %d-%d", n, MinSpeed, MaxSpeed)
	}
	return Speed(n), nil
}

// Clamp forces s into the valid range
func (s Speed) Clamp() Speed {
	switch {
	case s < MinSpeed:
		return MinSpeed
	case s > MaxSpeed:
		return MaxSpeed
	default:
		return s
	}
}

// Multiplier returns the interval multiplier for s
func (s Speed) Multiplier() float64 {
	return speedMultipliers[s.Clamp()-MinSpeed]
}

// Interval is the autoplay tick interval for s
func (s Speed) Interval(base time.Duration) time.Duration {
	if base <= 0 {
		base = DefaultBaseInterval
	}
	return time.Duration(math.Round(float64(base) * s.Multiplier()))
}

// DaysPerSecond is the rate label shown next to the speed control
func (s Speed) DaysPerSecond() float64 {
	return 1 + float64(s.Clamp()-1)*0.5
}

// Label formats the speed for display, e.g. "3.0x"
func (s Speed) Label() string {
	return fmt.Sprintf("%.1fx", s.DaysPerSecond())
}
