// Package audio renders hand events as synthesized sounds through beep
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pickacard/constant"
	"github.com/lixenwraith/pickacard/event"
)

// SoundManager plays hand events, implements event.Sink
// Safe to use before Initialize or after a failed Initialize: events are dropped
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       *voiceCache
	rate        beep.SampleRate
	volume      float64
	variants    map[event.Type]int
	initialized bool
	log         zerolog.Logger
}

// NewSoundManager creates a silent manager, call Initialize to open the speaker
func NewSoundManager(volume float64, log zerolog.Logger) *SoundManager {
	rate := beep.SampleRate(constant.AudioSampleRate)
	return &SoundManager{
		mixer:    &beep.Mixer{},
		cache:    newVoiceCache(rate),
		rate:     rate,
		volume:   volume,
		variants: make(map[event.Type]int),
		log:      log.With().Str("component", "audio").Logger(),
	}
}

// Initialize opens the speaker, calling it again is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(constant.AudioBufferDuration)); err != nil {
		return err
	}

	sm.cache.preload(allVoices()...)
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Info().Int("rate", int(sm.rate)).Int("voices", sm.cache.len()).Msg("speaker ready")
	return nil
}

// Cleanup stops all sounds and closes the speaker, Initialize may be called again
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Emit queues the sound for ev, honouring ev.Delay
func (sm *SoundManager) Emit(ev event.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, ok := sm.stream(ev)
	if !ok || !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// stream builds the streamer for ev and advances the variant rotation
// Rotation advances even while silent so variants stay in step with the hand
func (sm *SoundManager) stream(ev event.Event) (beep.Streamer, bool) {
	v, ok := sm.nextVoice(ev)
	if !ok {
		return nil, false
	}
	s := newVolume(sm.cache.streamer(v), sm.volume)
	return delayed(s, ev.Delay, sm.rate), true
}

func (sm *SoundManager) nextVoice(ev event.Event) (Voice, bool) {
	variants := variantsFor(ev)
	if len(variants) == 0 {
		return Voice{}, false
	}
	idx := sm.variants[ev.Type] % len(variants)
	sm.variants[ev.Type] = idx + 1
	return variants[idx], true
}
