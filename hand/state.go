package hand

import "fmt"

// State is the active selection phase
type State int

const (
	Idle State = iota
	Cycling
	Selected
)

var stateNames = [...]string{
	Idle:     "Idle",
	Cycling:  "Cycling",
	Selected: "Selected",
}

// String returns the state name as used in the transition graph
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// States returns all states in declaration order
func States() []State {
	return []State{Idle, Cycling, Selected}
}
