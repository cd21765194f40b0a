package engine

import "time"

// Timer accumulates elapsed game time until reset
// Zero value is ready to use
type Timer struct {
	elapsed time.Duration
}

// Increase adds dt to the accumulated time, negative deltas are ignored
func (t *Timer) Increase(dt time.Duration) {
	if dt > 0 {
		t.elapsed += dt
	}
}

// IncreaseWrap adds dt and reduces the result modulo period
// Keeps the accumulator strictly below period without losing phase
func (t *Timer) IncreaseWrap(dt, period time.Duration) {
	t.Increase(dt)
	if period > 0 {
		t.elapsed %= period
	}
}

// Reset clears the accumulated time
func (t *Timer) Reset() {
	t.elapsed = 0
}

// Value returns the accumulated time
func (t *Timer) Value() time.Duration {
	return t.elapsed
}

// Exceeds reports whether the accumulated time is strictly past limit
func (t *Timer) Exceeds(limit time.Duration) bool {
	return t.elapsed > limit
}

// Remaining returns limit minus accumulated time, floored at zero
func (t *Timer) Remaining(limit time.Duration) time.Duration {
	if r := limit - t.elapsed; r > 0 {
		return r
	}
	return 0
}
