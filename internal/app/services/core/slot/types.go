package slot

import "time"

// Config holds slot generation parameters.
type Config struct {
	SlotMinutes   int
	BufferMinutes int
	MaxWindowDays int
}

// interval is a half-open [Start, End) range.
type interval struct {
	Start time.Time
	End   time.Time
}
