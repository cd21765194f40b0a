package engine

import "time"

// Schedule is a single repeating timer handle evaluated inside the game tick
// Arming replaces any pending schedule; only the latest arm can ever fire
type Schedule struct {
	interval   time.Duration
	remaining  time.Duration
	active     bool
	generation uint64
}

// Arm cancels any pending schedule and installs a new one
// First fire after delay, then every interval
func (s *Schedule) Arm(delay, interval time.Duration) {
	s.interval = interval
	s.remaining = delay
	s.active = true
	s.generation++
}

// Cancel stops the pending schedule, no-op when idle
func (s *Schedule) Cancel() {
	s.active = false
	s.remaining = 0
}

// Active reports whether a schedule is armed
func (s *Schedule) Active() bool {
	return s.active
}

// Generation counts how many times the schedule has been armed
func (s *Schedule) Generation() uint64 {
	return s.generation
}

// Remaining returns time until the next fire, zero when idle
func (s *Schedule) Remaining() time.Duration {
	if !s.active {
		return 0
	}
	return s.remaining
}

// Advance consumes dt and reports whether the schedule fired
// Fires at most once per call; missed intervals are dropped while keeping
// the next fire aligned to the armed interval boundaries
func (s *Schedule) Advance(dt time.Duration) bool {
	if !s.active || dt < 0 {
		return false
	}

	s.remaining -= dt
	if s.remaining > 0 {
		return false
	}

	if s.interval <= 0 {
		s.Cancel()
		return true
	}

	overshoot := -s.remaining
	s.remaining = s.interval - overshoot%s.interval
	return true
}

// FirstDelay returns the delay that lands the next fire on a cadence boundary
// given time already spent on the current period; result lies in (0, cadence]
func FirstDelay(cadence, spent time.Duration) time.Duration {
	if cadence <= 0 {
		return 0
	}
	spent %= cadence
	if spent < 0 {
		spent += cadence
	}
	return cadence - spent
}
