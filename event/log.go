package event

import "github.com/rs/zerolog"

// LogSink writes every event to a zerolog logger
// DebugSnapshot is logged at trace level since it fires every frame
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a sink logging to log
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "events").Logger()}
}

// Emit implements Sink
func (s *LogSink) Emit(ev Event) {
	switch ev.Type {
	case DebugSnapshot:
		s.log.Trace().
			Stringer("event", ev.Type).
			Str("state", ev.Snapshot.State).
			Stringer("item", ev.Snapshot.Item).
			Dur("left_on_item", ev.Snapshot.TimeLeftOnItem).
			Dur("left_to_select", ev.Snapshot.TimeLeftToSelect).
			Dur("left_to_commit", ev.Snapshot.TimeLeftToCommit).
			Msg("debug snapshot")
	case DebugToggle:
		s.log.Info().Stringer("event", ev.Type).Bool("enabled", ev.Enabled).Msg("debug view")
	case Destiny, Gate, Hat:
		s.log.Debug().Stringer("event", ev.Type).Msg("emit")
	default:
		e := s.log.Debug().Stringer("event", ev.Type).Stringer("item", ev.Item)
		if ev.Delay > 0 {
			e = e.Dur("delay", ev.Delay)
		}
		e.Msg("emit")
	}
}
