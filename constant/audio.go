package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioVolume is the default linear gain
	AudioVolume = 0.8
)

// Voice Timing
const (
	ClickDuration = 60 * time.Millisecond
	ClickAttack   = 2 * time.Millisecond
	ClickRelease  = 30 * time.Millisecond

	QuoteDuration = 350 * time.Millisecond
	QuoteAttack   = 20 * time.Millisecond
	QuoteRelease  = 150 * time.Millisecond

	WhooshDuration = 600 * time.Millisecond
	WhooshAttack   = 150 * time.Millisecond
	WhooshRelease  = 250 * time.Millisecond

	ImpactDuration = 250 * time.Millisecond
	ImpactAttack   = 3 * time.Millisecond
	ImpactRelease  = 200 * time.Millisecond

	ChimeDuration = 500 * time.Millisecond
	ChimeAttack   = 10 * time.Millisecond
	ChimeRelease  = 300 * time.Millisecond
)
