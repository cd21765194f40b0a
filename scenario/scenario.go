// Package scenario runs scripted input timelines against a hand without a terminal
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pickacard/constant"
	"github.com/lixenwraith/pickacard/engine"
)

// ErrUnknownAction is wrapped when a step names no known action
var ErrUnknownAction = errors.New("unknown scenario action")

// actionShake feeds Accel through the shake detector instead of issuing a command directly
const actionShake = "shake"

// Scenario is a timeline of inputs
//
//	frame: 10ms
//	until: 3s
//	steps:
//	  - {at: 0s, action: cast}
//	  - {at: 1.4s, action: select}
//	  - {at: 2s, action: shake, accel: [0, 0, 2.5]}
type Scenario struct {
	Name  string        `yaml:"name"`
	Frame time.Duration `yaml:"frame"`
	Until time.Duration `yaml:"until"` // Defaults to one frame past the last step
	Steps []Step        `yaml:"steps"`
}

// Step is one input at a point on the timeline
type Step struct {
	At     time.Duration `yaml:"at"`
	Action string        `yaml:"action"`
	Accel  []float64     `yaml:"accel,omitempty"` // shake only: x, y, z in g

	cmd engine.Command
}

// Parse decodes and validates a YAML scenario
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.compile(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

func (sc *Scenario) compile() error {
	if sc.Frame < 0 {
		return fmt.Errorf("frame must be positive, got %v", sc.Frame)
	}
	if sc.Frame == 0 {
		sc.Frame = constant.FrameUpdateInterval
	}

	for i := range sc.Steps {
		step := &sc.Steps[i]
		if step.At < 0 {
			return fmt.Errorf("step %d: negative time %v", i, step.At)
		}
		if step.Action == actionShake {
			if len(step.Accel) != 3 {
				return fmt.Errorf("step %d: shake needs accel [x, y, z], got %d values", i, len(step.Accel))
			}
			step.cmd = engine.CmdStrong
			continue
		}
		cmd, ok := engine.ParseCommand(step.Action)
		if !ok {
			return fmt.Errorf("step %d: %w %q", i, ErrUnknownAction, step.Action)
		}
		step.cmd = cmd
	}

	// Steps at the same time keep file order
	sort.SliceStable(sc.Steps, func(i, j int) bool { return sc.Steps[i].At < sc.Steps[j].At })

	if sc.Until == 0 && len(sc.Steps) > 0 {
		sc.Until = sc.Steps[len(sc.Steps)-1].At + sc.Frame
	}
	return nil
}
