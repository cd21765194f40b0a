package event

import "sync"

// Recorder keeps every emitted event in order
// Used by the headless simulator and tests
type Recorder struct {
	mu     sync.Mutex
	events []Event
	filter map[Type]bool
}

// NewRecorder creates a recorder; when types are given only those are kept
func NewRecorder(types ...Type) *Recorder {
	r := &Recorder{}
	if len(types) > 0 {
		r.filter = make(map[Type]bool, len(types))
		for _, t := range types {
			r.filter[t] = true
		}
	}
	return r
}

// Emit implements Sink
func (r *Recorder) Emit(ev Event) {
	if r.filter != nil && !r.filter[ev.Type] {
		return
	}
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

// Count returns how many events of type t were recorded
func (r *Recorder) Count(t Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Last returns the most recent event of type t
func (r *Recorder) Last(t Type) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return Event{}, false
}

// Reset drops all recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = r.events[:0]
	r.mu.Unlock()
}
