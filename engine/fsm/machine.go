package fsm

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned by Init when no graph or initial state is configured
var ErrNotLoaded = errors.New("fsm has no initial state")

// NewMachine creates an empty machine, register callbacks then load a graph
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		reg: registry[T]{
			guards:    make(map[string]GuardFunc[T]),
			actions:   make(map[string]ActionFunc[T]),
			compilers: make(map[string]ArgsCompiler),
			triggers:  make(map[string]Trigger),
		},
		path: make([]StateID, 0, 4),
	}
	m.resetGraph()
	return m
}

// RegisterGuard names a guard for use in graphs
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.reg.guards[name] = fn
}

// RegisterAction names an action, compile may be nil when it takes no args
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T], compile ArgsCompiler) {
	m.reg.actions[name] = fn
	if compile != nil {
		m.reg.compilers[name] = compile
	}
}

// RegisterTrigger names an external trigger
func (m *Machine[T]) RegisterTrigger(name string, trigger Trigger) {
	m.reg.triggers[name] = trigger
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	target, ok := m.nodes[m.initial]
	if !ok {
		return ErrNotLoaded
	}

	m.active = target.ID
	m.path = append(m.path[:0], target.Path...)
	for _, id := range m.path {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update runs one tick of the machine
// The leaf's OnUpdate actions run first, then the first passing tick transition
// found from leaf to root is taken
func (m *Machine[T]) Update(ctx T) {
	if m.active == StateNone {
		return
	}

	leaf := m.active
	runActions(ctx, m.nodes[leaf].OnUpdate)
	if m.active != leaf {
		return
	}
	m.fire(ctx, TriggerTick)
}

// HandleEvent routes an external trigger from the leaf upwards
// Returns true if a transition was taken
func (m *Machine[T]) HandleEvent(ctx T, trigger Trigger) bool {
	if m.active == StateNone || trigger == TriggerTick {
		return false
	}
	return m.fire(ctx, trigger)
}

func (m *Machine[T]) fire(ctx T, trigger Trigger) bool {
	for id := m.active; id != StateNone; id = m.nodes[id].ParentID {
		for i := range m.nodes[id].Transitions {
			t := &m.nodes[id].Transitions[i]
			if t.Trigger == trigger && (t.Guard == nil || t.Guard(ctx)) {
				m.transition(ctx, t)
				return true
			}
		}
	}
	return false
}

// commonDepth is the number of leading path entries shared by a and b
func commonDepth(a, b []StateID) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// transition exits up to the common ancestor, runs the transition actions,
// then enters down to the target
func (m *Machine[T]) transition(ctx T, t *Transition[T]) {
	if t.TargetID == m.active {
		runActions(ctx, t.Actions)
		return
	}

	target, ok := m.nodes[t.TargetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state %d", t.TargetID))
	}
	shared := commonDepth(m.path, target.Path)

	for i := len(m.path) - 1; i >= shared; i-- {
		runActions(ctx, m.nodes[m.path[i]].OnExit)
	}

	// Transition actions already observe the target as active
	m.active = target.ID
	m.path = append(m.path[:0], target.Path...)
	runActions(ctx, t.Actions)

	for _, id := range target.Path[shared:] {
		runActions(ctx, m.nodes[id].OnEnter)
	}
}

// ActiveStateID returns the current leaf
func (m *Machine[T]) ActiveStateID() StateID {
	return m.active
}

// ActiveStateName returns the current leaf's name
func (m *Machine[T]) ActiveStateName() string {
	return m.StateName(m.active)
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}
