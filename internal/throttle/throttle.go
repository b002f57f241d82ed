// Package throttle decides when a periodic notification is due.
//
// The reference point is always re-aligned to an interval boundary measured
// from the Unix epoch, never incremented by one interval at a time. A poll
// that is delayed by several intervals therefore produces a single due
// evaluation and the cadence snaps back to the wall clock afterwards.
package throttle

import "time"

// IsDue reports whether more than interval has passed since reference.
func IsDue(now, reference, interval time.Duration) bool {
	return now-reference > interval
}

// Advance returns the interval boundary at or before now.
func Advance(now, interval time.Duration) time.Duration {
	q := now / interval
	// Go division truncates toward zero; floor for instants before the epoch.
	if now%interval < 0 {
		q--
	}
	return q * interval
}

// Throttle owns the reference point for one watch session.
// It is not safe for concurrent use.
type Throttle struct {
	interval  time.Duration
	reference time.Duration
}

// New returns a Throttle whose reference starts at the epoch.
// It panics if interval is not positive; configuration validation rejects
// such values before a session is built.
func New(interval time.Duration) *Throttle {
	if interval <= 0 {
		panic("throttle: non-positive interval")
	}
	return &Throttle{interval: interval}
}

// Due reports whether a periodic notification is due at now.
func (t *Throttle) Due(now time.Time) bool {
	return IsDue(sinceEpoch(now), t.reference, t.interval)
}

// Advance re-aligns the reference to the interval boundary at or before now.
func (t *Throttle) Advance(now time.Time) {
	t.reference = Advance(sinceEpoch(now), t.interval)
}

func sinceEpoch(t time.Time) time.Duration {
	return time.Duration(t.UnixNano())
}
