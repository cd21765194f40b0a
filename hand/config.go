package hand

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/pickacard/constant"
)

// ErrInvalidConfig is wrapped by every construction-time validation failure
var ErrInvalidConfig = errors.New("invalid hand config")

// TimeoutPolicy decides what a cycle timeout does to the current card
type TimeoutPolicy int

const (
	// PolicyHard clears the per-card timer and returns to the default card
	PolicyHard TimeoutPolicy = iota
	// PolicySoft keeps the current card and its phase
	PolicySoft
)

// String returns the config name of the policy
func (p TimeoutPolicy) String() string {
	switch p {
	case PolicyHard:
		return constant.PolicyHard
	case PolicySoft:
		return constant.PolicySoft
	default:
		return fmt.Sprintf("TimeoutPolicy(%d)", int(p))
	}
}

// ParsePolicy resolves a config name, empty selects the default
func ParsePolicy(name string) (TimeoutPolicy, bool) {
	switch name {
	case "":
		return ParsePolicy(constant.DefaultCycleTimeoutPolicy)
	case constant.PolicyHard:
		return PolicyHard, true
	case constant.PolicySoft:
		return PolicySoft, true
	}
	return PolicyHard, false
}

// Config holds the timing constants fixed at construction
type Config struct {
	Cadence   time.Duration // Time each card is shown while cycling
	MaxCycle  time.Duration // Cycling lapses after this long without a pick
	MaxCommit time.Duration // Selected card fizzles after this long without a throw
	Flight    time.Duration // Delay applied to land and hit
	Dwell     time.Duration // Minimum time in state before the strong trigger acts

	CycleTimeout TimeoutPolicy

	// GraphPath overrides the embedded transition graph when set
	GraphPath string
}

// DefaultConfig returns the stock timings
func DefaultConfig() Config {
	return Config{
		Cadence:      constant.CardCadence,
		MaxCycle:     constant.MaxCycleTime,
		MaxCommit:    constant.MaxCommitTime,
		Flight:       constant.FlightDuration,
		Dwell:        constant.StrongTriggerDwell,
		CycleTimeout: PolicyHard,
	}
}

// Validate rejects non-positive durations and unknown policies
func (c Config) Validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"cadence", c.Cadence},
		{"max cycle", c.MaxCycle},
		{"max commit", c.MaxCommit},
		{"flight", c.Flight},
		{"dwell", c.Dwell},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, d.name, d.value)
		}
	}
	if c.CycleTimeout != PolicyHard && c.CycleTimeout != PolicySoft {
		return fmt.Errorf("%w: unknown cycle timeout policy %d", ErrInvalidConfig, int(c.CycleTimeout))
	}
	return nil
}
