package status

import (
	"github.com/lixenwraith/pickacard/engine"
	"github.com/lixenwraith/pickacard/event"
)

// Sink folds hand events into a Registry, implements event.Sink
type Sink struct {
	reg *Registry
}

// NewSink returns a Sink writing into reg
func NewSink(reg *Registry) *Sink {
	return &Sink{reg: reg}
}

// Emit counts ev and records the latest readouts
func (s *Sink) Emit(ev event.Event) {
	s.reg.Ints.Get(EventKey(ev.Type.String())).Add(1)

	switch ev.Type {
	case event.Show, event.Flip, event.Pick, event.Fizzle:
		s.reg.Labels.Get(KeyItem).Set(ev.Item.String())
	case event.DebugToggle:
		s.reg.Bools.Get(KeyDebug).Store(ev.Enabled)
	case event.DebugSnapshot:
		snap := ev.Snapshot
		s.reg.Labels.Get(KeyState).Set(snap.State)
		s.reg.Labels.Get(KeyItem).Set(snap.Item.String())
		s.reg.Gauges.Get(KeyItemLeft).Set(snap.TimeLeftOnItem.Seconds())
		s.reg.Gauges.Get(KeySelectLeft).Set(snap.TimeLeftToSelect.Seconds())
		s.reg.Gauges.Get(KeyCommitLeft).Set(snap.TimeLeftToCommit.Seconds())
	}
}

// CountingTarget counts commands before forwarding them, implements engine.Target
type CountingTarget struct {
	engine.Target
	reg *Registry
}

// NewCountingTarget wraps target
func NewCountingTarget(target engine.Target, reg *Registry) *CountingTarget {
	return &CountingTarget{Target: target, reg: reg}
}

// Handle counts cmd and forwards it
func (c *CountingTarget) Handle(cmd engine.Command) {
	c.reg.Ints.Get(CommandKey(cmd.String())).Add(1)
	c.Target.Handle(cmd)
}
