package hand

import (
	"fmt"
	"time"

	"github.com/lixenwraith/pickacard/card"
	"github.com/lixenwraith/pickacard/engine"
	"github.com/lixenwraith/pickacard/engine/fsm"
	"github.com/lixenwraith/pickacard/event"
)

// Graph triggers, names are the keys used in asset.DefaultHandFSMConfig
const (
	triggerCast fsm.Trigger = iota + 1
	triggerSelect
	triggerCommit
	triggerReset
	triggerStrong
)

// emitArgs is the compiled form of the Emit action args
type emitArgs struct {
	typ     event.Type
	delayed bool
}

func (c *Controller) register() {
	m := c.machine

	m.RegisterTrigger("Cast", triggerCast)
	m.RegisterTrigger("Select", triggerSelect)
	m.RegisterTrigger("Commit", triggerCommit)
	m.RegisterTrigger("Reset", triggerReset)
	m.RegisterTrigger("Strong", triggerStrong)

	// Timeouts are strict: a timer equal to its limit has not expired
	m.RegisterGuard("CycleExpired", func(c *Controller) bool {
		return c.cycle.Exceeds(c.cfg.MaxCycle)
	})
	m.RegisterGuard("CommitExpired", func(c *Controller) bool {
		return c.commit.Exceeds(c.cfg.MaxCommit)
	})
	m.RegisterGuard("IdleDwellElapsed", func(c *Controller) bool {
		return c.idle.Exceeds(c.cfg.Dwell)
	})
	m.RegisterGuard("CycleDwellElapsed", func(c *Controller) bool {
		return c.cycle.Exceeds(c.cfg.Dwell)
	})
	m.RegisterGuard("CommitDwellElapsed", func(c *Controller) bool {
		return c.commit.Exceeds(c.cfg.Dwell)
	})

	m.RegisterAction("StartCycling", actionStartCycling, nil)
	m.RegisterAction("AdvanceRotation", actionAdvanceRotation, nil)
	m.RegisterAction("CancelRotation", func(c *Controller, _ any) { c.rotation.Cancel() }, nil)
	m.RegisterAction("ResetCycleTimer", func(c *Controller, _ any) { c.cycle.Reset() }, nil)
	m.RegisterAction("ResetCommitTimer", func(c *Controller, _ any) { c.commit.Reset() }, nil)
	m.RegisterAction("SoftReset", func(c *Controller, _ any) { c.softReset() }, nil)
	m.RegisterAction("HardReset", func(c *Controller, _ any) { c.hardReset() }, nil)
	m.RegisterAction("CycleTimeout", actionCycleTimeout, nil)
	m.RegisterAction("Emit", actionEmit, compileEmitArgs)
}

// actionStartCycling replaces the rotation schedule so the first advance lands
// on the boundary the interrupted rotation would have hit
func actionStartCycling(c *Controller, _ any) {
	c.rotation.Cancel()
	c.show(c.item)
	c.emit(event.Flip, 0)
	c.rotation.Arm(engine.FirstDelay(c.cfg.Cadence, c.perItem.Value()), c.cfg.Cadence)
}

func actionAdvanceRotation(c *Controller, _ any) {
	// Timeout wins over an advance due on the same tick
	if c.cycle.Exceeds(c.cfg.MaxCycle) {
		return
	}
	if !c.rotation.Advance(c.frameDelta) {
		return
	}
	c.item = card.Next(c.item)
	c.show(c.item)
	c.emit(event.Flip, 0)
}

func actionCycleTimeout(c *Controller, _ any) {
	c.log.Info().
		Stringer("item", c.item).
		Stringer("policy", c.cfg.CycleTimeout).
		Dur("cycle", c.cycle.Value()).
		Msg("cycle timed out without a pick")

	switch c.cfg.CycleTimeout {
	case PolicySoft:
		c.softReset()
	default:
		c.hardReset()
	}
}

func actionEmit(c *Controller, args any) {
	a := args.(emitArgs)
	if a.typ == event.Fizzle {
		c.log.Info().Stringer("item", c.item).Dur("held", c.commit.Value()).Msg("selected card fizzled")
	}
	var delay time.Duration
	if a.delayed {
		delay = c.cfg.Flight
	}
	c.emit(a.typ, delay)
}

func compileEmitArgs(raw map[string]any) (any, error) {
	name, ok := raw["event"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("missing 'event' arg")
	}
	typ, ok := event.GetType(name)
	if !ok {
		return nil, fmt.Errorf("unknown event '%s'", name)
	}

	var delayed bool
	if v, present := raw["delayed"]; present {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("'delayed' must be a bool, got %T", v)
		}
		delayed = b
	}

	for key := range raw {
		if key != "event" && key != "delayed" {
			return nil, fmt.Errorf("unexpected arg '%s'", key)
		}
	}
	return emitArgs{typ: typ, delayed: delayed}, nil
}
