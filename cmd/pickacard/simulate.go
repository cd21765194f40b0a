package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/pickacard/engine"
	"github.com/lixenwraith/pickacard/event"
	"github.com/lixenwraith/pickacard/hand"
	"github.com/lixenwraith/pickacard/input"
	"github.com/lixenwraith/pickacard/scenario"
	"github.com/lixenwraith/pickacard/status"
)

var simulateFlags struct {
	scenario string
	all      bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a scripted input scenario and print the event timeline",
	Args:  cobra.NoArgs,
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.scenario, "scenario", "", "scenario YAML file")
	f.BoolVar(&simulateFlags.all, "all", false, "include show, hide and debug snapshot events")
	_ = simulateCmd.MarkFlagRequired("scenario")
}

// clockedTarget tracks scenario time for event timestamps
type clockedTarget struct {
	engine.Target
	now time.Duration
}

// Tick stamps events emitted during the frame with the frame end time
func (c *clockedTarget) Tick(dt time.Duration) {
	c.now += dt
	c.Target.Tick(dt)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	level, err := settings.LogLevel()
	if err != nil {
		return err
	}
	setupConsoleLogging(cmd.ErrOrStderr(), level)

	handCfg, err := settings.HandConfig()
	if err != nil {
		return err
	}
	sc, err := scenario.Load(simulateFlags.scenario)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reg := status.NewRegistry()
	clocked := &clockedTarget{}

	timeline := event.SinkFunc(func(ev event.Event) {
		if !simulateFlags.all && quiet(ev.Type) {
			return
		}
		printEvent(out, clocked.now, ev)
	})

	ctrl, err := hand.New(handCfg, event.Multi(timeline, status.NewSink(reg), event.NewLogSink(log.Logger)), log.Logger)
	if err != nil {
		return err
	}
	clocked.Target = ctrl

	res := scenario.Run(sc, status.NewCountingTarget(clocked, reg), input.NewShakeDetector())

	fmt.Fprintf(out, "\n%s: %d frames, %s, %d steps applied, %d shakes ignored, final state %s\n",
		sc.Name, res.Frames, res.Elapsed, res.Applied, res.Ignored, ctrl.State())
	printCounters(out, reg)
	return nil
}

func quiet(t event.Type) bool {
	return t == event.Show || t == event.Hide || t == event.DebugSnapshot
}

func printEvent(w io.Writer, at time.Duration, ev event.Event) {
	line := fmt.Sprintf("%8s  %-13s %s", at, ev.Type, ev.Item)
	if ev.Delay > 0 {
		line += fmt.Sprintf("  (+%s)", ev.Delay)
	}
	fmt.Fprintln(w, line)
}

func printCounters(w io.Writer, reg *status.Registry) {
	dump := reg.Dump()
	keys := make([]string, 0, len(dump))
	for k := range dump {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-20s %s\n", k, dump[k])
	}
}
