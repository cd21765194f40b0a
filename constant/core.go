package constant

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the driver tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FrameMaxDelta caps dt handed to the hand after a stall
	// Larger gaps are treated as one capped frame rather than a burst
	FrameMaxDelta = 250 * time.Millisecond

	// CommandQueueSize is the driver command channel capacity
	CommandQueueSize = 64
)

// Environment
const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "PICKACARD_"

	// DefaultEnvFile is loaded when present, missing file is not an error
	DefaultEnvFile = ".env"

	// LogDir holds debug log files written by the play host
	LogDir = "logs"
)
