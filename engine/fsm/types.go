package fsm

// StateID is a node index assigned at load time, Root is always 1
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Trigger names the input a transition reacts to
type Trigger int

// TriggerTick marks transitions evaluated on every Update
const TriggerTick Trigger = 0

// GuardFunc gates a transition
type GuardFunc[T any] func(ctx T) bool

// ActionFunc runs a side effect with its compiled args
type ActionFunc[T any] func(ctx T, args any)

// ArgsCompiler turns the raw YAML args of an action into the value handed to ActionFunc
// Errors surface at load time
type ArgsCompiler func(raw map[string]any) (any, error)

// Action is a resolved action reference
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
	Args any
}

// Transition links a node to a target
// Targeting the active leaf makes it internal: actions run, no exit or enter
type Transition[T any] struct {
	TargetID StateID
	Trigger  Trigger
	Guard    GuardFunc[T] // nil passes
	Actions  []Action[T]
}

// Node is one state of the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID
	Path     []StateID // Root first, this node last

	OnEnter     []Action[T]
	OnUpdate    []Action[T]
	OnExit      []Action[T]
	Transitions []Transition[T] // Declaration order is priority order
}

// registry holds the named callbacks a graph may reference
type registry[T any] struct {
	guards    map[string]GuardFunc[T]
	actions   map[string]ActionFunc[T]
	compilers map[string]ArgsCompiler
	triggers  map[string]Trigger
}

// Machine runs a hierarchical state graph over a context of type T
// Not safe for concurrent use
type Machine[T any] struct {
	reg registry[T]

	// Graph, rebuilt by every load
	nodes   map[StateID]*Node[T]
	byName  map[string]StateID
	initial StateID

	active StateID
	path   []StateID // Active path, Root to leaf
}
