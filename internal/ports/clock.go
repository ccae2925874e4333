package ports

import "time"

// Clock schedules callbacks. The engine never touches time directly so
// tests and headless runs can drive playback with a virtual clock.
type Clock interface {
	Now() time.Time

	// Every calls fn repeatedly, d apart, until the ticker is stopped
	Every(d time.Duration, fn func()) Ticker

	// AfterFunc calls fn once after d
	AfterFunc(d time.Duration, fn func()) Timer
}

// Ticker is a cancellable repeating schedule
type Ticker interface {
	Stop()
}

// Timer is a cancellable one-shot schedule.
// Stop reports whether it prevented the callback from running.
type Timer interface {
	Stop() bool
}
