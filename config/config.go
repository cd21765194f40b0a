// Package config merges built-in defaults, a YAML file, a .env file and the process environment
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pickacard/constant"
	"github.com/lixenwraith/pickacard/hand"
)

// ErrInvalidPolicy is returned for an unknown cycle_timeout_policy
var ErrInvalidPolicy = errors.New("invalid cycle timeout policy")

// Settings is the merged runtime configuration
type Settings struct {
	Hand  HandSettings  `yaml:"hand" envPrefix:"HAND_"`
	Frame FrameSettings `yaml:"frame" envPrefix:"FRAME_"`
	Audio AudioSettings `yaml:"audio" envPrefix:"AUDIO_"`
	Log   LogSettings   `yaml:"log" envPrefix:"LOG_"`
}

// HandSettings feeds hand.Config
type HandSettings struct {
	Cadence            time.Duration `yaml:"cadence" env:"CADENCE"`
	MaxCycle           time.Duration `yaml:"max_cycle" env:"MAX_CYCLE"`
	MaxCommit          time.Duration `yaml:"max_commit" env:"MAX_COMMIT"`
	Flight             time.Duration `yaml:"flight" env:"FLIGHT"`
	Dwell              time.Duration `yaml:"dwell" env:"DWELL"`
	CycleTimeoutPolicy string        `yaml:"cycle_timeout_policy" env:"CYCLE_TIMEOUT_POLICY"`
	Graph              string        `yaml:"graph" env:"GRAPH"` // Optional transition graph override
}

// FrameSettings drives engine.Driver
type FrameSettings struct {
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
	MaxDelta time.Duration `yaml:"max_delta" env:"MAX_DELTA"`
}

// AudioSettings controls the beep sink
type AudioSettings struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Volume  float64 `yaml:"volume" env:"VOLUME"` // Linear gain, 0 mutes
}

// LogSettings controls the global zerolog logger
type LogSettings struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns settings built from the constant package
func Default() Settings {
	return Settings{
		Hand: HandSettings{
			Cadence:            constant.CardCadence,
			MaxCycle:           constant.MaxCycleTime,
			MaxCommit:          constant.MaxCommitTime,
			Flight:             constant.FlightDuration,
			Dwell:              constant.StrongTriggerDwell,
			CycleTimeoutPolicy: constant.DefaultCycleTimeoutPolicy,
		},
		Frame: FrameSettings{
			Interval: constant.FrameUpdateInterval,
			MaxDelta: constant.FrameMaxDelta,
		},
		Audio: AudioSettings{
			Enabled: true,
			Volume:  constant.AudioVolume,
		},
		Log: LogSettings{
			Level: zerolog.InfoLevel.String(),
		},
	}
}

// Load merges defaults < YAML file < .env < environment, then validates
// Empty path skips the file; a missing envFile is ignored
func Load(path, envFile string) (Settings, error) {
	s := Default()

	if path != "" {
		if err := loadFile(path, &s); err != nil {
			return s, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return s, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := ParseEnv(&s); err != nil {
		return s, err
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// ParseEnv overlays PICKACARD_ prefixed environment variables onto target
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: constant.EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks every section
func (s Settings) Validate() error {
	if _, err := s.HandConfig(); err != nil {
		return err
	}
	if s.Frame.Interval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v", s.Frame.Interval)
	}
	if s.Frame.MaxDelta < s.Frame.Interval {
		return fmt.Errorf("frame max_delta %v is below interval %v", s.Frame.MaxDelta, s.Frame.Interval)
	}
	if s.Audio.Volume < 0 {
		return fmt.Errorf("audio volume must not be negative, got %v", s.Audio.Volume)
	}
	if _, err := s.LogLevel(); err != nil {
		return err
	}
	return nil
}

// HandConfig converts the hand section, validating durations and policy
func (s Settings) HandConfig() (hand.Config, error) {
	policy, ok := hand.ParsePolicy(s.Hand.CycleTimeoutPolicy)
	if !ok {
		return hand.Config{}, fmt.Errorf("%w: %q", ErrInvalidPolicy, s.Hand.CycleTimeoutPolicy)
	}
	cfg := hand.Config{
		Cadence:      s.Hand.Cadence,
		MaxCycle:     s.Hand.MaxCycle,
		MaxCommit:    s.Hand.MaxCommit,
		Flight:       s.Hand.Flight,
		Dwell:        s.Hand.Dwell,
		CycleTimeout: policy,
		GraphPath:    s.Hand.Graph,
	}
	if err := cfg.Validate(); err != nil {
		return hand.Config{}, err
	}
	return cfg, nil
}

// LogLevel parses the configured zerolog level
func (s Settings) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(s.Log.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s.Log.Level, err)
	}
	return level, nil
}
