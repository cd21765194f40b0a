package constant

import "time"

// Hand Timing
const (
	// CardCadence is the time each card stays shown while cycling
	CardCadence = 400 * time.Millisecond

	// MaxCycleTime is how long cards cycle before the ability lapses
	MaxCycleTime = 6 * time.Second

	// MaxCommitTime is how long a picked card may be held before it fizzles
	MaxCommitTime = 6 * time.Second

	// FlightDuration delays land and hit until the thrown card arrives
	// Matches the length of the flight sound
	FlightDuration = 700 * time.Millisecond

	// StrongTriggerDwell is the minimum time in a state before a shake acts
	StrongTriggerDwell = 1 * time.Second
)

// Cycle timeout policies
const (
	PolicyHard = "hard"
	PolicySoft = "soft"
)

// DefaultCycleTimeoutPolicy resets the item on cycle timeout
const DefaultCycleTimeoutPolicy = PolicyHard

// Shake Detection
const (
	// ShakeThreshold is the acceleration magnitude in g that counts as a shake
	ShakeThreshold = 2.0
)
