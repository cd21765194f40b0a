package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
// Runes covers printable keys, Keys covers tcell special keys
type KeyTable struct {
	Runes map[rune]Intent
	Keys  map[tcell.Key]Intent
}

// DefaultKeyTable returns the stock bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Intent{
			' ': IntentCast,
			's': IntentSelect,
			't': IntentCommit,
			'c': IntentCommit,
			'k': IntentShake,
			'd': IntentDebug,
			'r': IntentReset,
			'q': IntentQuit,
		},
		Keys: map[tcell.Key]Intent{
			tcell.KeyEnter:  IntentSelect,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
		},
	}
}

// Resolve returns the intent bound to ev
func (kt *KeyTable) Resolve(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}

// Merge overlays the bindings of other onto kt
// An IntentNone entry in other unbinds the key
func (kt *KeyTable) Merge(other *KeyTable) {
	if other == nil {
		return
	}
	for r, i := range other.Runes {
		if i == IntentNone {
			delete(kt.Runes, r)
			continue
		}
		kt.Runes[r] = i
	}
	for k, i := range other.Keys {
		if i == IntentNone {
			delete(kt.Keys, k)
			continue
		}
		kt.Keys[k] = i
	}
}
