package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pickacard/constant"
)

// ErrDriverRunning is returned when Run is called on a driver that is already looping
var ErrDriverRunning = errors.New("driver already running")

// Target receives serialized ticks and commands from the driver
type Target interface {
	Tick(dt time.Duration)
	Handle(cmd Command)
}

// Driver runs the frame loop for a single Target
// Ticks and commands are delivered on the loop goroutine only, so the target
// never observes concurrent calls
type Driver struct {
	clock    clockwork.Clock
	target   Target
	interval time.Duration
	maxDelta time.Duration

	commands chan Command
	onFrame  func(dt time.Duration)

	frames  atomic.Uint64
	running atomic.Bool
	log     zerolog.Logger
}

// NewDriver creates a driver ticking target every interval on clock
// maxDelta caps a single frame delta after stalls, zero disables the cap
func NewDriver(clock clockwork.Clock, target Target, interval, maxDelta time.Duration, log zerolog.Logger) *Driver {
	return &Driver{
		clock:    clock,
		target:   target,
		interval: interval,
		maxDelta: maxDelta,
		commands: make(chan Command, constant.CommandQueueSize),
		log:      log.With().Str("component", "driver").Logger(),
	}
}

// SetFrameHook installs a callback run on the loop goroutine after every tick
// Must be called before Run
func (d *Driver) SetFrameHook(fn func(dt time.Duration)) {
	d.onFrame = fn
}

// Send queues a command for the loop goroutine, safe from any goroutine
// Returns false when the queue is full and the command was dropped
func (d *Driver) Send(cmd Command) bool {
	select {
	case d.commands <- cmd:
		return true
	default:
		d.log.Warn().Stringer("command", cmd).Msg("command queue full, dropping")
		return false
	}
}

// Frames returns the number of ticks delivered so far
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Run loops until ctx is done
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrDriverRunning
	}
	defer d.running.Store(false)

	last := d.clock.Now()
	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	d.log.Debug().Dur("interval", d.interval).Msg("frame loop started")

	for {
		select {
		case <-ctx.Done():
			d.log.Debug().Uint64("frames", d.frames.Load()).Msg("frame loop stopped")
			return nil

		case cmd := <-d.commands:
			d.target.Handle(cmd)

		case <-ticker.Chan():
			now := d.clock.Now()
			dt := now.Sub(last)
			last = now

			if d.maxDelta > 0 && dt > d.maxDelta {
				d.log.Debug().Dur("dt", dt).Dur("cap", d.maxDelta).Msg("frame delta capped")
				dt = d.maxDelta
			}

			d.target.Tick(dt)
			d.frames.Add(1)

			if d.onFrame != nil {
				d.onFrame(dt)
			}
		}
	}
}
