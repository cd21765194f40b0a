// Package event defines the notifications the hand emits to its presentation collaborators
package event

// Type identifies a presentation notification
type Type int

const (
	// Show reveals one card; the other two are hidden with Hide
	// Payload: Item
	Show Type = iota + 1

	// Hide conceals one card
	// Payload: Item
	Hide

	// Flip plays the shuffle transition when a card is shown during cycling
	// Payload: Item (card now shown)
	Flip

	// Pick plays the card-specific pick quote
	// Payload: Item
	Pick

	// Intermediate plays the click made when a card locks in
	// Payload: Item
	Intermediate

	// Flight plays the travel sound when the card is thrown
	// Payload: Item
	Flight

	// Land plays the impact, Delay set to the flight duration
	// Payload: Item, Delay
	Land

	// Hit plays the auto-attack impact, Delay set to the flight duration
	// Payload: Item, Delay
	Hit

	// Fizzle plays when a selected card times out unthrown
	// Payload: Item
	Fizzle

	// DebugToggle reports the debug view switching on or off
	// Payload: Enabled
	DebugToggle

	// DebugSnapshot carries the per-tick timer readout while debug is on
	// Payload: Snapshot
	DebugSnapshot

	// Destiny plays when the debug view turns on
	Destiny

	// Gate plays when the debug view turns off
	Gate

	// Hat plays when the hidden reset control is used
	Hat

	typeEnd
)

var typeNames = map[Type]string{
	Show:          "Show",
	Hide:          "Hide",
	Flip:          "Flip",
	Pick:          "Pick",
	Intermediate:  "Intermediate",
	Flight:        "Flight",
	Land:          "Land",
	Hit:           "Hit",
	Fizzle:        "Fizzle",
	DebugToggle:   "DebugToggle",
	DebugSnapshot: "DebugSnapshot",
	Destiny:       "Destiny",
	Gate:          "Gate",
	Hat:           "Hat",
}

var nameToType = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the event name
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// GetType resolves an event name as used in graph config
func GetType(name string) (Type, bool) {
	t, ok := nameToType[name]
	return t, ok
}

// Types returns all event types in declaration order
func Types() []Type {
	out := make([]Type, 0, len(typeNames))
	for t := Show; t < typeEnd; t++ {
		out = append(out, t)
	}
	return out
}
