package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// voiceCache stores rendered unity-volume buffers per Voice
type voiceCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  map[Voice]*beep.Buffer
}

func newVoiceCache(rate beep.SampleRate) *voiceCache {
	return &voiceCache{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		store:  make(map[Voice]*beep.Buffer),
	}
}

// get returns the cached buffer or renders it on demand
func (c *voiceCache) get(v Voice) *beep.Buffer {
	c.mu.RLock()
	buf, ok := c.store[v]
	c.mu.RUnlock()
	if ok {
		return buf
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf, ok := c.store[v]; ok {
		return buf
	}

	buf = beep.NewBuffer(c.format)
	buf.Append(NewTone(v, c.format.SampleRate))
	c.store[v] = buf
	return buf
}

// streamer returns a fresh reader over the rendered voice
func (c *voiceCache) streamer(v Voice) beep.Streamer {
	buf := c.get(v)
	return buf.Streamer(0, buf.Len())
}

// preload renders the given voices ahead of first use
func (c *voiceCache) preload(voices ...Voice) {
	for _, v := range voices {
		c.get(v)
	}
}

func (c *voiceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
