// Package hand implements the timed card-selection controller
package hand

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pickacard/asset"
	"github.com/lixenwraith/pickacard/card"
	"github.com/lixenwraith/pickacard/engine"
	"github.com/lixenwraith/pickacard/engine/fsm"
	"github.com/lixenwraith/pickacard/event"
)

// Controller owns the hand state, the current card, its four timers and the rotation schedule
// Not safe for concurrent use; engine.Driver serializes all calls
type Controller struct {
	cfg     Config
	sink    event.Sink
	log     zerolog.Logger
	session string

	machine *fsm.Machine[*Controller]
	states  map[fsm.StateID]State

	item     card.Item
	perItem  engine.Timer
	cycle    engine.Timer
	commit   engine.Timer
	idle     engine.Timer
	rotation engine.Schedule

	// dt of the tick in progress, read by OnUpdate actions
	frameDelta time.Duration

	debug bool
}

// New validates cfg, loads the transition graph and returns an Idle controller showing the default card
// A nil sink discards events
func New(cfg Config, sink event.Sink, log zerolog.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = event.Discard
	}

	c := &Controller{
		cfg:     cfg,
		sink:    sink,
		session: uuid.NewString(),
		item:    card.Default,
		machine: fsm.NewMachine[*Controller](),
		states:  make(map[fsm.StateID]State, 3),
	}
	c.log = log.With().Str("component", "hand").Str("session", c.session).Logger()

	c.register()
	if err := fsm.LoadConfigAuto(c.machine, cfg.GraphPath, asset.DefaultHandFSMConfig); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, s := range States() {
		id, ok := c.machine.GetStateID(s.String())
		if !ok {
			return nil, fmt.Errorf("%w: graph has no state %q", ErrInvalidConfig, s)
		}
		c.states[id] = s
	}
	if err := c.machine.Init(c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.State() != Idle {
		return nil, fmt.Errorf("%w: graph must start in %s, got %s", ErrInvalidConfig, Idle, c.machine.ActiveStateName())
	}

	c.log.Debug().Dur("cadence", cfg.Cadence).Stringer("policy", cfg.CycleTimeout).Msg("hand ready")
	return c, nil
}

// Session returns the id attached to this controller's log lines
func (c *Controller) Session() string {
	return c.session
}

// Config returns the timings the controller was built with
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the active selection phase
func (c *Controller) State() State {
	s, ok := c.states[c.machine.ActiveStateID()]
	if !ok {
		panic(fmt.Sprintf("hand: invariant violated, active state %q is not a hand state", c.machine.ActiveStateName()))
	}
	return s
}

// Current returns the card currently shown or selected
func (c *Controller) Current() card.Item {
	return c.item
}

// DebugEnabled reports whether per-tick snapshots are emitted
func (c *Controller) DebugEnabled() bool {
	return c.debug
}

// ScheduleActive reports whether a rotation advance is pending
func (c *Controller) ScheduleActive() bool {
	return c.rotation.Active()
}

// ScheduleGeneration counts rotation schedules installed so far
func (c *Controller) ScheduleGeneration() uint64 {
	return c.rotation.Generation()
}

// NextAdvance returns time until the pending rotation advance, zero when none
func (c *Controller) NextAdvance() time.Duration {
	return c.rotation.Remaining()
}

// Tick advances the hand by dt: timers first, then the rotation, then timeouts
func (c *Controller) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	prev := c.State()

	switch prev {
	case Idle:
		c.idle.Increase(dt)
	case Cycling:
		c.perItem.IncreaseWrap(dt, c.cfg.Cadence)
		c.cycle.Increase(dt)
	case Selected:
		c.commit.Increase(dt)
	}

	c.frameDelta = dt
	c.machine.Update(c)
	c.frameDelta = 0

	c.logTransition(prev, "tick")

	if c.debug {
		c.sink.Emit(event.Event{Type: event.DebugSnapshot, Item: c.item, Snapshot: c.Snapshot()})
	}
}

// CastAbility starts cycling from Idle, or re-arms the rotation while Cycling
func (c *Controller) CastAbility() {
	c.fire(triggerCast, "cast")
}

// Select picks the shown card while Cycling
func (c *Controller) Select() {
	c.fire(triggerSelect, "select")
}

// Commit throws the selected card
func (c *Controller) Commit() {
	c.fire(triggerCommit, "commit")
}

// ForceReset hard-resets from any state
func (c *Controller) ForceReset() {
	c.fire(triggerReset, "reset")
}

// StrongTrigger acts as cast, select or commit once the current state's dwell has elapsed
func (c *Controller) StrongTrigger() {
	c.fire(triggerStrong, "strong")
}

// ToggleDebug flips the debug readout
func (c *Controller) ToggleDebug() {
	c.debug = !c.debug
	c.sink.Emit(event.Event{Type: event.DebugToggle, Item: c.item, Enabled: c.debug})
	if c.debug {
		c.sink.Emit(event.Event{Type: event.Destiny, Item: c.item})
		// First readout without waiting for the next tick
		c.sink.Emit(event.Event{Type: event.DebugSnapshot, Item: c.item, Snapshot: c.Snapshot()})
	} else {
		c.sink.Emit(event.Event{Type: event.Gate, Item: c.item})
	}
	c.log.Info().Bool("debug", c.debug).Msg("debug view toggled")
}

// Handle dispatches a driver command, implements engine.Target with Tick
func (c *Controller) Handle(cmd engine.Command) {
	switch cmd {
	case engine.CmdCast:
		c.CastAbility()
	case engine.CmdSelect:
		c.Select()
	case engine.CmdCommit:
		c.Commit()
	case engine.CmdReset:
		c.ForceReset()
	case engine.CmdStrong:
		c.StrongTrigger()
	case engine.CmdToggleDebug:
		c.ToggleDebug()
	default:
		c.log.Debug().Stringer("command", cmd).Msg("unknown command ignored")
	}
}

// Snapshot returns the debug readout of the timers
func (c *Controller) Snapshot() event.Snapshot {
	onItem := c.perItem.Remaining(c.cfg.Cadence)
	if c.rotation.Active() {
		onItem = c.rotation.Remaining()
	}
	return event.Snapshot{
		State:            c.State().String(),
		Item:             c.item,
		TimeLeftOnItem:   onItem,
		TimeLeftToSelect: c.cycle.Remaining(c.cfg.MaxCycle),
		TimeLeftToCommit: c.commit.Remaining(c.cfg.MaxCommit),
	}
}

func (c *Controller) fire(trigger fsm.Trigger, cause string) {
	prev := c.State()
	if !c.machine.HandleEvent(c, trigger) {
		c.log.Debug().Str("input", cause).Stringer("state", prev).Msg("input ignored")
		return
	}
	c.logTransition(prev, cause)
}

func (c *Controller) logTransition(prev State, cause string) {
	next := c.State()
	if next == prev {
		return
	}
	c.log.Debug().
		Str("cause", cause).
		Stringer("from", prev).
		Stringer("to", next).
		Stringer("item", c.item).
		Msg("state transition")
}

func (c *Controller) emit(typ event.Type, delay time.Duration) {
	c.sink.Emit(event.Event{Type: typ, Item: c.item, Delay: delay})
}

// show reveals item and hides the other two
func (c *Controller) show(item card.Item) {
	item.MustValid()
	for _, other := range card.All() {
		if other == item {
			c.sink.Emit(event.Event{Type: event.Show, Item: other})
		} else {
			c.sink.Emit(event.Event{Type: event.Hide, Item: other})
		}
	}
}

func (c *Controller) hideAll() {
	for _, item := range card.All() {
		c.sink.Emit(event.Event{Type: event.Hide, Item: item})
	}
}

// softReset keeps the current card and its phase
func (c *Controller) softReset() {
	c.rotation.Cancel()
	c.hideAll()
	c.cycle.Reset()
	c.commit.Reset()
	c.idle.Reset()
}

func (c *Controller) hardReset() {
	c.softReset()
	c.perItem.Reset()
	c.item = card.Default
}
