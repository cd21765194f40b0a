package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric keys written by Sink and CountingTarget
const (
	KeyState      = "hand.state"
	KeyItem       = "hand.item"
	KeyDebug      = "hand.debug"
	KeyItemLeft   = "timer.item_left"
	KeySelectLeft = "timer.select_left"
	KeyCommitLeft = "timer.commit_left"

	eventPrefix   = "event."
	commandPrefix = "cmd."
)

// Registry groups metrics by value type
// Writers run on the driver goroutine, readers (view, logs) may run anywhere
type Registry struct {
	Bools  *Metrics[atomic.Bool]
	Ints   *Metrics[atomic.Int64]
	Gauges *Metrics[Gauge]
	Labels *Metrics[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetrics[atomic.Bool](),
		Ints:   NewMetrics[atomic.Int64](),
		Gauges: NewMetrics[Gauge](),
		Labels: NewMetrics[Label](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Gauges.Len() + r.Labels.Len()
}

// EventKey is the counter key for an event type name
func EventKey(name string) string { return eventPrefix + name }

// CommandKey is the counter key for a command name
func CommandKey(name string) string { return commandPrefix + name }

// Count reads an int counter without registering it
func (r *Registry) Count(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}

// Dump returns every metric rendered as text, keyed by metric name
func (r *Registry) Dump() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = strconv.FormatBool(v.Load()) })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = strconv.FormatInt(v.Load(), 10) })
	r.Gauges.Range(func(k string, v *Gauge) { out[k] = fmt.Sprintf("%.2f", v.Get()) })
	r.Labels.Range(func(k string, v *Label) { out[k] = v.Get() })
	return out
}
