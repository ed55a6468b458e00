// Package throttle paces sequential dispatches so the bot stays under the
// messaging platform's rate limits.
package throttle

import "time"

// Throttle enforces a minimum interval between successive dispatches.
// Sleep is a field so tests can count pacing calls without waiting.
type Throttle struct {
	Interval time.Duration
	Sleep    func(time.Duration)
}

func New(interval time.Duration) *Throttle {
	return &Throttle{Interval: interval, Sleep: time.Sleep}
}

// Pace blocks for the configured interval. Callers invoke it between
// dispatches, not before the first one.
func (t *Throttle) Pace() {
	if t.Interval > 0 {
		t.Sleep(t.Interval)
	}
}
