package pos

import (
	"time"
)

// =============================================================================
// CLOCK - Server-local time source (day boundaries are server-local)
// =============================================================================

// Clock supplies the current server-local instant. The accounting engine
// never calls time.Now directly; tests substitute a fixed clock to pin
// the midnight guard and day boundaries.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real server-local time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Test use only.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Today returns the current server-local calendar day.
func Today(clock Clock) Date {
	return DateOf(clock.Now())
}

// InMidnightHour reports whether the clock is inside the first hour after
// midnight (server-local hour 0). The midnight guard suppresses "today"
// reports during this window.
func InMidnightHour(clock Clock) bool {
	return clock.Now().Hour() == 0
}
