package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/pickacard/audio"
	"github.com/lixenwraith/pickacard/engine"
	"github.com/lixenwraith/pickacard/event"
	"github.com/lixenwraith/pickacard/hand"
	"github.com/lixenwraith/pickacard/input"
	"github.com/lixenwraith/pickacard/render"
	"github.com/lixenwraith/pickacard/status"
)

var playFlags struct {
	keys  string
	debug bool
	mute  bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the hand in the terminal with sound",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	f := playCmd.Flags()
	f.StringVar(&playFlags.keys, "keys", "", "YAML key bindings merged over the defaults")
	f.BoolVar(&playFlags.debug, "debug", false, "write debug logs to "+logDir+"/"+logFileName)
	f.BoolVar(&playFlags.mute, "mute", false, "disable audio")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	handCfg, err := settings.HandConfig()
	if err != nil {
		return err
	}
	level, err := settings.LogLevel()
	if err != nil {
		return err
	}
	keys, err := input.LoadKeyTable(playFlags.keys)
	if err != nil {
		return err
	}

	if logFile := setupLogging(playFlags.debug); logFile != nil {
		defer logFile.Close()
		if level > zerolog.DebugLevel {
			level = zerolog.DebugLevel
		}
	}
	log.Logger = log.Logger.Level(level)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before the stack trace so it stays readable
	defer func() {
		if r := recover(); r != nil {
			crash(screen, "PICKACARD CRASHED", r)
		}
	}()

	reg := status.NewRegistry()
	view := render.NewView(screen, reg)

	sound := audio.NewSoundManager(settings.Audio.Volume, log.Logger)
	if settings.Audio.Enabled && !playFlags.mute {
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		}
	}
	defer sound.Cleanup()

	sink := event.Multi(view, sound, status.NewSink(reg), event.NewLogSink(log.Logger))
	ctrl, err := hand.New(handCfg, sink, log.Logger)
	if err != nil {
		return err
	}

	driver := engine.NewDriver(clockwork.NewRealClock(), status.NewCountingTarget(ctrl, reg),
		settings.Frame.Interval, settings.Frame.MaxDelta, log.Logger)
	// Runs on the driver goroutine, same as every controller call
	driver.SetFrameHook(func(dt time.Duration) {
		view.Frame(dt, ctrl.State().String())
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	view.Draw(ctrl.State().String())
	go pollInput(screen, keys, driver, cancel)

	log.Info().Str("session", ctrl.Session()).Dur("cadence", handCfg.Cadence).Msg("play started")
	err = driver.Run(ctx)
	log.Info().Uint64("frames", driver.Frames()).Interface("counters", reg.Dump()).Msg("play stopped")
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// pollInput feeds key presses to the driver until quit or the screen closes
func pollInput(screen tcell.Screen, keys *input.KeyTable, driver *engine.Driver, quit context.CancelFunc) {
	defer func() {
		if r := recover(); r != nil {
			crash(screen, "EVENT POLLER CRASHED", r)
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			intent := keys.Resolve(ev)
			if intent == input.IntentQuit {
				quit()
				return
			}
			if c, ok := intent.Command(); ok && !driver.Send(c) {
				log.Warn().Stringer("command", c).Msg("command queue full, input dropped")
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func crash(screen tcell.Screen, title string, r any) {
	screen.Fini()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s: %v\x1b[0m\r\n", title, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
