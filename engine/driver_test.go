package engine

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type recordingTarget struct {
	ticks    chan time.Duration
	commands chan Command
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{
		ticks:    make(chan time.Duration, 16),
		commands: make(chan Command, 16),
	}
}

func (r *recordingTarget) Tick(dt time.Duration) { r.ticks <- dt }
func (r *recordingTarget) Handle(cmd Command)    { r.commands <- cmd }

func startDriver(t *testing.T, d *Driver, fc *clockwork.FakeClock) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	if err := fc.BlockUntilContext(waitCtx, 1); err != nil {
		cancel()
		t.Fatalf("ticker never registered: %v", err)
	}
	return cancel, done
}

func TestDriverTicksWithFrameDelta(t *testing.T) {
	fc := clockwork.NewFakeClock()
	target := newRecordingTarget()
	d := NewDriver(fc, target, 16*time.Millisecond, 0, zerolog.Nop())

	frames := make(chan time.Duration, 16)
	d.SetFrameHook(func(dt time.Duration) { frames <- dt })

	cancel, done := startDriver(t, d, fc)
	defer cancel()

	fc.Advance(16 * time.Millisecond)

	select {
	case dt := <-target.ticks:
		if dt != 16*time.Millisecond {
			t.Errorf("tick dt = %v, want 16ms", dt)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick delivered")
	}

	select {
	case <-frames:
	case <-time.After(time.Second):
		t.Fatal("frame hook not called")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if got := d.Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
}

func TestDriverCapsFrameDelta(t *testing.T) {
	fc := clockwork.NewFakeClock()
	target := newRecordingTarget()
	d := NewDriver(fc, target, 16*time.Millisecond, 50*time.Millisecond, zerolog.Nop())

	cancel, _ := startDriver(t, d, fc)
	defer cancel()

	fc.Advance(2 * time.Second)

	select {
	case dt := <-target.ticks:
		if dt != 50*time.Millisecond {
			t.Errorf("tick dt = %v, want capped 50ms", dt)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestDriverSerializesCommands(t *testing.T) {
	fc := clockwork.NewFakeClock()
	target := newRecordingTarget()
	d := NewDriver(fc, target, 16*time.Millisecond, 0, zerolog.Nop())

	cancel, _ := startDriver(t, d, fc)
	defer cancel()

	for _, cmd := range []Command{CmdCast, CmdSelect, CmdCommit} {
		if !d.Send(cmd) {
			t.Fatalf("Send(%v) dropped", cmd)
		}
	}

	want := []Command{CmdCast, CmdSelect, CmdCommit}
	for i, w := range want {
		select {
		case got := <-target.commands:
			if got != w {
				t.Errorf("command %d = %v, want %v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("command %d not delivered", i)
		}
	}
}

func TestDriverRejectsSecondRun(t *testing.T) {
	fc := clockwork.NewFakeClock()
	d := NewDriver(fc, newRecordingTarget(), 16*time.Millisecond, 0, zerolog.Nop())

	cancel, _ := startDriver(t, d, fc)
	defer cancel()

	if err := d.Run(context.Background()); err != ErrDriverRunning {
		t.Errorf("second Run() = %v, want ErrDriverRunning", err)
	}
}

func TestParseCommand(t *testing.T) {
	for _, cmd := range []Command{CmdCast, CmdSelect, CmdCommit, CmdReset, CmdStrong, CmdToggleDebug} {
		got, ok := ParseCommand(cmd.String())
		if !ok || got != cmd {
			t.Errorf("ParseCommand(%q) = %v, %v", cmd.String(), got, ok)
		}
	}
	if _, ok := ParseCommand("none"); ok {
		t.Error("ParseCommand(none) should fail")
	}
	if _, ok := ParseCommand("fly"); ok {
		t.Error("ParseCommand(fly) should fail")
	}
}
