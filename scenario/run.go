package scenario

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pickacard/engine"
	"github.com/lixenwraith/pickacard/event"
	"github.com/lixenwraith/pickacard/hand"
	"github.com/lixenwraith/pickacard/input"
)

// Result summarizes a run
type Result struct {
	Frames  int
	Elapsed time.Duration
	Applied int // Steps delivered to the target
	Ignored int // Shakes below the detector threshold
}

// Run plays sc against target frame by frame
// Steps due at or before the current time are applied before each tick
func Run(sc *Scenario, target engine.Target, detector input.ShakeDetector) Result {
	var res Result
	next := 0

	for {
		for next < len(sc.Steps) && sc.Steps[next].At <= res.Elapsed {
			step := sc.Steps[next]
			next++
			if step.Action == actionShake && !detector.Sample(step.Accel[0], step.Accel[1], step.Accel[2]) {
				res.Ignored++
				continue
			}
			target.Handle(step.cmd)
			res.Applied++
		}

		if res.Elapsed >= sc.Until {
			return res
		}
		target.Tick(sc.Frame)
		res.Elapsed += sc.Frame
		res.Frames++
	}
}

// Simulate builds a hand from cfg, runs sc and returns every emitted event
// sink, when non-nil, also receives the events as they happen
func Simulate(sc *Scenario, cfg hand.Config, sink event.Sink, log zerolog.Logger) ([]event.Event, Result, error) {
	rec := event.NewRecorder()
	ctrl, err := hand.New(cfg, event.Multi(rec, sink), log)
	if err != nil {
		return nil, Result{}, err
	}

	log.Debug().Str("scenario", sc.Name).Int("steps", len(sc.Steps)).Dur("until", sc.Until).Msg("scenario start")
	res := Run(sc, ctrl, input.NewShakeDetector())
	log.Debug().Str("scenario", sc.Name).Int("frames", res.Frames).Stringer("state", ctrl.State()).Msg("scenario done")

	return rec.Events(), res, nil
}
