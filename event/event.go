package event

import (
	"time"

	"github.com/lixenwraith/pickacard/card"
)

// Event is a fire-and-forget notification
// Fields beyond Type are only meaningful for the types documented in type.go
type Event struct {
	Type     Type
	Item     card.Item
	Delay    time.Duration // Collaborator should defer playback by this much
	Enabled  bool          // DebugToggle only
	Snapshot Snapshot      // DebugSnapshot only
}

// Snapshot is the debug readout of the hand timers
type Snapshot struct {
	State            string
	Item             card.Item
	TimeLeftOnItem   time.Duration
	TimeLeftToSelect time.Duration
	TimeLeftToCommit time.Duration
}

// Sink receives events, called synchronously on the game loop goroutine
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ev Event)

// Emit implements Sink
func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans events out to every sink in order, nil sinks are skipped
func Multi(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return multiSink(filtered)
}

type multiSink []Sink

func (m multiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}
