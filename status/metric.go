package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Metrics is a concurrent set of named values of type T
// Pointers returned by Get stay valid for the life of the set
type Metrics[T any] struct {
	m sync.Map // string -> *T
	n atomic.Int64
}

// NewMetrics creates an empty set
func NewMetrics[T any]() *Metrics[T] {
	return &Metrics[T]{}
}

// Get returns the value for key, creating the zero value on first use
func (s *Metrics[T]) Get(key string) *T {
	if v, ok := s.m.Load(key); ok {
		return v.(*T)
	}
	v, loaded := s.m.LoadOrStore(key, new(T))
	if !loaded {
		s.n.Add(1)
	}
	return v.(*T)
}

// Has reports whether key was ever requested
func (s *Metrics[T]) Has(key string) bool {
	_, ok := s.m.Load(key)
	return ok
}

// Keys returns the requested keys in sorted order
func (s *Metrics[T]) Keys() []string {
	var keys []string
	s.m.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Range visits values in key order
func (s *Metrics[T]) Range(fn func(key string, v *T)) {
	for _, k := range s.Keys() {
		fn(k, s.Get(k))
	}
}

// Len returns the number of keys
func (s *Metrics[T]) Len() int {
	return int(s.n.Load())
}

// Gauge is a float64 readable from any goroutine, zero value is 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Get() float64 { return math.Float64frombits(g.bits.Load()) }

// MaxLabelLen caps Label values, labels are state and card names
const MaxLabelLen = 20

// Label is a short string readable from any goroutine, zero value is empty
type Label struct {
	v atomic.Value // string
}

// Set stores s truncated to MaxLabelLen bytes
func (l *Label) Set(s string) {
	if len(s) > MaxLabelLen {
		s = s[:MaxLabelLen]
	}
	l.v.Store(s)
}

func (l *Label) Get() string {
	s, _ := l.v.Load().(string)
	return s
}
