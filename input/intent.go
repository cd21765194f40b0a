// Package input turns terminal keys and accelerometer samples into hand commands
package input

import "github.com/lixenwraith/pickacard/engine"

// Intent is what a key asks the host to do
type Intent uint8

const (
	IntentNone Intent = iota
	IntentCast
	IntentSelect
	IntentCommit
	IntentShake
	IntentDebug
	IntentReset
	IntentQuit
)

// intentNames are the action names accepted in key config files
var intentNames = map[string]Intent{
	"cast":   IntentCast,
	"select": IntentSelect,
	"commit": IntentCommit,
	"shake":  IntentShake,
	"debug":  IntentDebug,
	"reset":  IntentReset,
	"quit":   IntentQuit,
}

// ParseIntent resolves a config action name
func ParseIntent(name string) (Intent, bool) {
	i, ok := intentNames[name]
	return i, ok
}

// String returns the config action name
func (i Intent) String() string {
	for name, v := range intentNames {
		if v == i {
			return name
		}
	}
	return "none"
}

// Command maps the intent to a driver command
// Quit and None have no command, the host handles them
func (i Intent) Command() (engine.Command, bool) {
	switch i {
	case IntentCast:
		return engine.CmdCast, true
	case IntentSelect:
		return engine.CmdSelect, true
	case IntentCommit:
		return engine.CmdCommit, true
	case IntentShake:
		return engine.CmdStrong, true
	case IntentDebug:
		return engine.CmdToggleDebug, true
	case IntentReset:
		return engine.CmdReset, true
	}
	return engine.CmdNone, false
}
