package hand

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pickacard/card"
	"github.com/lixenwraith/pickacard/engine"
	"github.com/lixenwraith/pickacard/event"
)

const step = 10 * time.Millisecond

func newTestHand(t *testing.T, cfg Config, types ...event.Type) (*Controller, *event.Recorder) {
	t.Helper()
	rec := event.NewRecorder(types...)
	c, err := New(cfg, rec, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c, rec
}

// tickFor advances the hand in fixed steps, total must be a multiple of step
func tickFor(c *Controller, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		c.Tick(step)
	}
}

func TestNewStartsIdleOnDefaultCard(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig())

	if c.State() != Idle {
		t.Errorf("State() = %v, want Idle", c.State())
	}
	if c.Current() != card.Default {
		t.Errorf("Current() = %v, want %v", c.Current(), card.Default)
	}
	if c.ScheduleActive() {
		t.Error("fresh hand has an active schedule")
	}
	if n := len(rec.Events()); n != 0 {
		t.Errorf("construction emitted %d events, want 0", n)
	}
	if c.Session() == "" {
		t.Error("Session() is empty")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cadence", func(c *Config) { c.Cadence = 0 }},
		{"negative max cycle", func(c *Config) { c.MaxCycle = -time.Second }},
		{"zero max commit", func(c *Config) { c.MaxCommit = 0 }},
		{"zero flight", func(c *Config) { c.Flight = 0 }},
		{"zero dwell", func(c *Config) { c.Dwell = 0 }},
		{"unknown policy", func(c *Config) { c.CycleTimeout = TimeoutPolicy(7) }},
		{"missing graph file", func(c *Config) { c.GraphPath = filepath.Join(t.TempDir(), "none.yaml") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, nil, zerolog.Nop())
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestCastShowsCurrentAndFlips(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig())
	c.CastAbility()

	want := []event.Event{
		{Type: event.Show, Item: card.Blue},
		{Type: event.Hide, Item: card.Red},
		{Type: event.Hide, Item: card.Gold},
		{Type: event.Flip, Item: card.Blue},
	}
	if diff := cmp.Diff(want, rec.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if c.State() != Cycling {
		t.Errorf("State() = %v, want Cycling", c.State())
	}
	if got := c.NextAdvance(); got != c.Config().Cadence {
		t.Errorf("NextAdvance() = %v, want full cadence", got)
	}
}

func TestRotationAdvancesOnCadence(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.Flip)
	c.CastAbility()

	tickFor(c, 390*time.Millisecond)
	if c.Current() != card.Blue {
		t.Fatalf("advanced early to %v", c.Current())
	}
	c.Tick(step)
	if c.Current() != card.Red {
		t.Errorf("Current() = %v after one cadence, want Red", c.Current())
	}
	tickFor(c, 400*time.Millisecond)
	if c.Current() != card.Gold {
		t.Errorf("Current() = %v after two cadences, want Gold", c.Current())
	}
	if got := rec.Count(event.Flip); got != 3 {
		t.Errorf("Flip count = %d, want 3", got)
	}
}

func TestLargeFrameFiresOneAdvance(t *testing.T) {
	c, _ := newTestHand(t, DefaultConfig())
	c.CastAbility()

	c.Tick(1100 * time.Millisecond)
	if c.Current() != card.Red {
		t.Errorf("Current() = %v, want Red after a single long frame", c.Current())
	}
	// 1100ms into the rotation, next boundary is at 1200ms
	if got := c.NextAdvance(); got != 100*time.Millisecond {
		t.Errorf("NextAdvance() = %v, want 100ms", got)
	}
}

func TestSoftResetResumesMidCadence(t *testing.T) {
	c, _ := newTestHand(t, DefaultConfig())
	c.CastAbility()
	tickFor(c, 550*time.Millisecond)
	c.Select()
	c.Commit()

	if c.State() != Idle {
		t.Fatalf("State() = %v, want Idle after commit", c.State())
	}
	if c.Current() != card.Red {
		t.Fatalf("soft reset changed card to %v, want Red", c.Current())
	}

	c.CastAbility()
	if got, want := c.NextAdvance(), 250*time.Millisecond; got != want {
		t.Errorf("first advance after %v, want %v", got, want)
	}
	tickFor(c, 250*time.Millisecond)
	if c.Current() != card.Gold {
		t.Errorf("Current() = %v, want Gold on the resumed boundary", c.Current())
	}
}

func TestRecastKeepsSingleSchedule(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.Flip)
	c.CastAbility()
	tickFor(c, 100*time.Millisecond)
	gen := c.ScheduleGeneration()

	c.CastAbility()
	if c.ScheduleGeneration() != gen+1 {
		t.Errorf("ScheduleGeneration() = %d, want %d", c.ScheduleGeneration(), gen+1)
	}
	if got := c.NextAdvance(); got != 300*time.Millisecond {
		t.Errorf("NextAdvance() = %v, want 300ms", got)
	}
	if got := c.Snapshot().TimeLeftToSelect; got != c.Config().MaxCycle-100*time.Millisecond {
		t.Errorf("re-cast reset the cycle timer, TimeLeftToSelect = %v", got)
	}

	tickFor(c, 300*time.Millisecond)
	// Two cast flips plus exactly one advance
	if got := rec.Count(event.Flip); got != 3 {
		t.Errorf("Flip count = %d, want 3", got)
	}
	if c.Current() != card.Red {
		t.Errorf("Current() = %v, want Red", c.Current())
	}
}

func TestRecastFromUnevenPhase(t *testing.T) {
	const odd = 7 * time.Millisecond
	c, rec := newTestHand(t, DefaultConfig(), event.Flip)
	cadence := c.Config().Cadence

	c.CastAbility()
	for i := 0; i < 19; i++ {
		c.Tick(odd)
	}
	c.CastAbility()
	if got, want := c.NextAdvance(), cadence-19*odd; got != want {
		t.Fatalf("NextAdvance() = %v, want %v", got, want)
	}

	c.Tick(cadence - 19*odd - time.Millisecond)
	if got := rec.Count(event.Flip); got != 2 {
		t.Errorf("Flip count = %d before the boundary, want 2", got)
	}
	c.Tick(time.Millisecond)
	if got := rec.Count(event.Flip); got != 3 || c.Current() != card.Red {
		t.Errorf("Flip count = %d, Current() = %v at the boundary, want 3 and Red", got, c.Current())
	}

	// Phase restarts from the boundary
	for i := 0; i < 5; i++ {
		c.Tick(odd)
	}
	c.CastAbility()
	if got, want := c.NextAdvance(), cadence-5*odd; got != want {
		t.Errorf("NextAdvance() after second re-cast = %v, want %v", got, want)
	}
}

func TestCycleTimeoutHardReset(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.Pick, event.Fizzle)
	c.CastAbility()

	tickFor(c, c.Config().MaxCycle)
	if c.State() != Cycling {
		t.Fatalf("State() = %v at exactly max cycle, want Cycling", c.State())
	}
	c.Tick(step)

	if c.State() != Idle {
		t.Errorf("State() = %v, want Idle", c.State())
	}
	if c.Current() != card.Default {
		t.Errorf("Current() = %v, want default card", c.Current())
	}
	if c.ScheduleActive() {
		t.Error("schedule still active after timeout")
	}
	if got := c.Snapshot().TimeLeftOnItem; got != c.Config().Cadence {
		t.Errorf("per-card timer not cleared, TimeLeftOnItem = %v", got)
	}
	if n := len(rec.Events()); n != 0 {
		t.Errorf("timeout emitted %d pick/fizzle events, want 0", n)
	}
}

func TestCycleTimeoutSoftPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CycleTimeout = PolicySoft
	c, _ := newTestHand(t, cfg)
	c.CastAbility()

	tickFor(c, cfg.MaxCycle)
	before := c.Current()
	c.Tick(step)

	if c.State() != Idle {
		t.Fatalf("State() = %v, want Idle", c.State())
	}
	if c.Current() != before {
		t.Errorf("soft timeout changed card %v -> %v", before, c.Current())
	}
	if got := c.Snapshot().TimeLeftOnItem; got != cfg.Cadence-step {
		t.Errorf("TimeLeftOnItem = %v, want %v", got, cfg.Cadence-step)
	}
}

func TestCommitTimeoutFizzlesOnce(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.Fizzle, event.Flight)
	c.CastAbility()
	tickFor(c, 450*time.Millisecond)
	c.Select()
	if c.State() != Selected {
		t.Fatalf("State() = %v, want Selected", c.State())
	}

	tickFor(c, c.Config().MaxCommit)
	if rec.Count(event.Fizzle) != 0 {
		t.Fatal("fizzled at exactly max commit")
	}
	c.Tick(step)
	tickFor(c, time.Second)

	if got := rec.Count(event.Fizzle); got != 1 {
		t.Errorf("Fizzle count = %d, want 1", got)
	}
	if got := rec.Count(event.Flight); got != 0 {
		t.Errorf("Flight count = %d, want 0", got)
	}
	if c.State() != Idle {
		t.Errorf("State() = %v, want Idle", c.State())
	}
	if c.Current() != card.Red {
		t.Errorf("Current() = %v, want Red kept by soft reset", c.Current())
	}
	if ev, _ := rec.Last(event.Fizzle); ev.Item != card.Red {
		t.Errorf("Fizzle item = %v, want Red", ev.Item)
	}
}

func TestSelectedCardDoesNotRotate(t *testing.T) {
	c, _ := newTestHand(t, DefaultConfig())
	c.CastAbility()
	c.Select()
	tickFor(c, 2*time.Second)
	if c.Current() != card.Blue {
		t.Errorf("Current() = %v, selected card rotated", c.Current())
	}
	if c.ScheduleActive() {
		t.Error("schedule active while Selected")
	}
}

func TestEndToEndCastSelectCommit(t *testing.T) {
	cfg := DefaultConfig()
	c, rec := newTestHand(t, cfg, event.Flip, event.Pick, event.Intermediate, event.Flight, event.Land, event.Hit)

	c.CastAbility()
	tickFor(c, cfg.Cadence*7/2)
	c.Select()
	c.Commit()

	want := []event.Type{
		event.Flip, event.Flip, event.Flip, event.Flip,
		event.Pick, event.Intermediate,
		event.Flight, event.Land, event.Hit,
	}
	if diff := cmp.Diff(want, rec.Types()); diff != "" {
		t.Errorf("event types mismatch (-want +got):\n%s", diff)
	}

	wantItem := card.Next(card.Next(card.Next(card.Default)))
	if c.Current() != wantItem {
		t.Errorf("Current() = %v, want %v", c.Current(), wantItem)
	}
	if c.State() != Idle {
		t.Errorf("State() = %v, want Idle", c.State())
	}

	for _, typ := range []event.Type{event.Land, event.Hit} {
		ev, ok := rec.Last(typ)
		if !ok {
			t.Fatalf("no %v event", typ)
		}
		if ev.Delay != cfg.Flight {
			t.Errorf("%v delay = %v, want %v", typ, ev.Delay, cfg.Flight)
		}
	}
	if ev, _ := rec.Last(event.Flight); ev.Delay != 0 {
		t.Errorf("Flight delay = %v, want 0", ev.Delay)
	}
}

func TestStrongTriggerDwell(t *testing.T) {
	cfg := DefaultConfig()
	c, rec := newTestHand(t, cfg, event.Flip, event.Pick, event.Flight)

	// Idle
	c.StrongTrigger()
	tickFor(c, cfg.Dwell)
	c.StrongTrigger()
	if c.State() != Idle {
		t.Fatalf("strong trigger acted before idle dwell, state %v", c.State())
	}
	c.Tick(step)
	c.StrongTrigger()
	if c.State() != Cycling || rec.Count(event.Flip) != 1 {
		t.Fatalf("strong trigger in Idle: state %v, flips %d", c.State(), rec.Count(event.Flip))
	}

	// Cycling
	c.StrongTrigger()
	if c.State() != Cycling {
		t.Fatal("strong trigger selected before cycle dwell")
	}
	tickFor(c, cfg.Dwell+step)
	c.StrongTrigger()
	if c.State() != Selected || rec.Count(event.Pick) != 1 {
		t.Fatalf("strong trigger in Cycling: state %v, picks %d", c.State(), rec.Count(event.Pick))
	}

	// Selected
	c.StrongTrigger()
	if c.State() != Selected {
		t.Fatal("strong trigger committed before commit dwell")
	}
	tickFor(c, cfg.Dwell+step)
	c.StrongTrigger()
	if c.State() != Idle || rec.Count(event.Flight) != 1 {
		t.Errorf("strong trigger in Selected: state %v, flights %d", c.State(), rec.Count(event.Flight))
	}
}

func TestForceResetIdempotent(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.Hat)
	c.CastAbility()
	tickFor(c, 450*time.Millisecond)
	c.Select()

	c.ForceReset()
	first := c.Snapshot()
	firstState, firstItem := c.State(), c.Current()

	c.ForceReset()
	if diff := cmp.Diff(first, c.Snapshot()); diff != "" {
		t.Errorf("second reset changed snapshot (-first +second):\n%s", diff)
	}
	if c.State() != firstState || c.Current() != firstItem {
		t.Errorf("second reset changed state %v/%v -> %v/%v", firstState, firstItem, c.State(), c.Current())
	}
	if firstState != Idle || firstItem != card.Default {
		t.Errorf("after reset state %v item %v, want Idle %v", firstState, firstItem, card.Default)
	}
	if got := rec.Count(event.Hat); got != 2 {
		t.Errorf("Hat count = %d, want 2", got)
	}
}

func TestSpuriousInputsIgnored(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig())

	c.Select()
	c.Commit()
	if c.State() != Idle || len(rec.Events()) != 0 {
		t.Errorf("Idle select/commit changed state to %v with %d events", c.State(), len(rec.Events()))
	}

	c.CastAbility()
	rec.Reset()
	c.Commit()
	if c.State() != Cycling || len(rec.Events()) != 0 {
		t.Errorf("Cycling commit changed state to %v with %d events", c.State(), len(rec.Events()))
	}

	c.Select()
	rec.Reset()
	c.Select()
	c.CastAbility()
	if c.State() != Selected || len(rec.Events()) != 0 {
		t.Errorf("Selected select/cast changed state to %v with %d events", c.State(), len(rec.Events()))
	}
}

func TestStateAlwaysWellFormed(t *testing.T) {
	c, _ := newTestHand(t, DefaultConfig())
	inputs := []func(){
		c.CastAbility, c.Select, c.Commit, c.ForceReset, c.StrongTrigger,
	}

	for i := 0; i < 2000; i++ {
		if i%7 == 0 {
			inputs[(i/7)%len(inputs)]()
		}
		c.Tick(time.Duration(i%5+1) * 7 * time.Millisecond)

		s := c.State()
		if s != Idle && s != Cycling && s != Selected {
			t.Fatalf("iteration %d: unknown state %v", i, s)
		}
		if !c.Current().Valid() {
			t.Fatalf("iteration %d: invalid card %v", i, c.Current())
		}
		if c.ScheduleActive() != (s == Cycling) {
			t.Fatalf("iteration %d: schedule active=%v in %v", i, c.ScheduleActive(), s)
		}
		snap := c.Snapshot()
		if snap.TimeLeftOnItem <= 0 || snap.TimeLeftOnItem > c.Config().Cadence {
			t.Fatalf("iteration %d: TimeLeftOnItem %v out of range", i, snap.TimeLeftOnItem)
		}
	}
}

func TestToggleDebugSnapshots(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.DebugToggle, event.DebugSnapshot, event.Destiny, event.Gate)

	c.ToggleDebug()
	c.Tick(step)
	c.ToggleDebug()
	c.Tick(step)

	want := []event.Type{event.DebugToggle, event.Destiny, event.DebugSnapshot, event.DebugSnapshot, event.DebugToggle, event.Gate}
	if diff := cmp.Diff(want, rec.Types()); diff != "" {
		t.Errorf("event types mismatch (-want +got):\n%s", diff)
	}

	snap, _ := rec.Last(event.DebugSnapshot)
	wantSnap := event.Snapshot{
		State:            "Idle",
		Item:             card.Blue,
		TimeLeftOnItem:   c.Config().Cadence,
		TimeLeftToSelect: c.Config().MaxCycle,
		TimeLeftToCommit: c.Config().MaxCommit,
	}
	if diff := cmp.Diff(wantSnap, snap.Snapshot); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if toggle, _ := rec.Last(event.DebugToggle); toggle.Enabled {
		t.Error("last DebugToggle should report disabled")
	}
}

func TestToggleDebugSnapshotsImmediately(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.DebugSnapshot)
	c.CastAbility()
	tickFor(c, 130*time.Millisecond)

	c.ToggleDebug()
	snap, ok := rec.Last(event.DebugSnapshot)
	if !ok {
		t.Fatal("no DebugSnapshot when debug was enabled")
	}
	want := event.Snapshot{
		State:            "Cycling",
		Item:             card.Blue,
		TimeLeftOnItem:   270 * time.Millisecond,
		TimeLeftToSelect: c.Config().MaxCycle - 130*time.Millisecond,
		TimeLeftToCommit: c.Config().MaxCommit,
	}
	if diff := cmp.Diff(want, snap.Snapshot); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	c.ToggleDebug()
	if got := rec.Count(event.DebugSnapshot); got != 1 {
		t.Errorf("DebugSnapshot count = %d after disabling, want 1", got)
	}
}

func TestHandleCommands(t *testing.T) {
	c, rec := newTestHand(t, DefaultConfig(), event.Flight, event.Hat, event.DebugToggle)

	var target engine.Target = c
	target.Handle(engine.CmdCast)
	target.Tick(step)
	target.Handle(engine.CmdSelect)
	target.Handle(engine.CmdCommit)
	target.Handle(engine.CmdReset)
	target.Handle(engine.CmdToggleDebug)
	target.Handle(engine.CmdNone)

	want := []event.Type{event.Flight, event.Hat, event.DebugToggle}
	if diff := cmp.Diff(want, rec.Types()); diff != "" {
		t.Errorf("event types mismatch (-want +got):\n%s", diff)
	}
	if !c.DebugEnabled() {
		t.Error("debug not enabled by CmdToggleDebug")
	}
}

func TestCompileEmitArgs(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		want    emitArgs
		wantErr bool
	}{
		{"plain", map[string]any{"event": "Pick"}, emitArgs{typ: event.Pick}, false},
		{"delayed", map[string]any{"event": "Land", "delayed": true}, emitArgs{typ: event.Land, delayed: true}, false},
		{"missing event", map[string]any{}, emitArgs{}, true},
		{"unknown event", map[string]any{"event": "Boom"}, emitArgs{}, true},
		{"bad delayed", map[string]any{"event": "Hit", "delayed": "yes"}, emitArgs{}, true},
		{"extra arg", map[string]any{"event": "Hit", "volume": 3}, emitArgs{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compileEmitArgs(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("compileEmitArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.(emitArgs) != tt.want {
				t.Errorf("compileEmitArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want TimeoutPolicy
		ok   bool
	}{
		{"", PolicyHard, true},
		{"hard", PolicyHard, true},
		{"soft", PolicySoft, true},
		{"gentle", PolicyHard, false},
	}
	for _, tt := range tests {
		got, ok := ParsePolicy(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePolicy(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
