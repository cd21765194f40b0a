package input

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Rune aliases for keys that read badly as bare YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keyConfig is the YAML keymap layout
//
//	runes: {space: cast, x: none}
//	keys:  {Enter: select, Esc: quit}
type keyConfig struct {
	Runes map[string]string `yaml:"runes"`
	Keys  map[string]string `yaml:"keys"`
}

// LoadKeyConfig parses YAML keymap data into a sparse override KeyTable
// Action "none" unbinds a key; unknown actions or key names are errors
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw keyConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{
		Runes: make(map[rune]Intent, len(raw.Runes)),
		Keys:  make(map[tcell.Key]Intent, len(raw.Keys)),
	}

	for name, action := range raw.Runes {
		r, err := parseRune(name)
		if err != nil {
			return nil, fmt.Errorf("runes: %w", err)
		}
		intent, err := parseAction(action)
		if err != nil {
			return nil, fmt.Errorf("runes.%s: %w", name, err)
		}
		kt.Runes[r] = intent
	}

	for name, action := range raw.Keys {
		key, ok := specialKey(name)
		if !ok {
			return nil, fmt.Errorf("keys: unknown key name %q", name)
		}
		intent, err := parseAction(action)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", name, err)
		}
		kt.Keys[key] = intent
	}

	return kt, nil
}

// LoadKeyTable returns the default table with the file at path merged on top
// Empty path returns the defaults
func LoadKeyTable(path string) (*KeyTable, error) {
	kt := DefaultKeyTable()
	if path == "" {
		return kt, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap: %w", err)
	}
	override, err := LoadKeyConfig(data)
	if err != nil {
		return nil, err
	}
	kt.Merge(override)
	return kt, nil
}

func parseRune(name string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(name)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(name) != 1 {
		return 0, fmt.Errorf("key %q is not a single character", name)
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r, nil
}

func parseAction(action string) (Intent, error) {
	if action == "none" {
		return IntentNone, nil
	}
	intent, ok := ParseIntent(action)
	if !ok {
		return IntentNone, fmt.Errorf("unknown action %q", action)
	}
	return intent, nil
}

// specialKey resolves tcell key names such as "Enter" or "Ctrl-C"
func specialKey(name string) (tcell.Key, bool) {
	for k, n := range tcell.KeyNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}
