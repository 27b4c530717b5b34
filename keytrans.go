package vt100core

import (
	"os"

	"gopkg.in/yaml.v3"
)

// keyEntry is one row of a YAML key-translation table: the bytes to send
// for a named key, optionally varying by modifier and by whether the
// emulator is in application cursor-key / application keypad mode (§6,
// grounded on the historical KeyTrans lookup table).
type keyEntry struct {
	Key      string `yaml:"key"`
	Normal   string `yaml:"normal"`
	Shift    string `yaml:"shift,omitempty"`
	Control  string `yaml:"control,omitempty"`
	AppCuKey string `yaml:"app_cursor,omitempty"`
	AppKeyPd string `yaml:"app_keypad,omitempty"`
}

// keyTable is the on-disk shape of a key-translation file: a flat list of
// entries keyed by logical key name.
type keyTable struct {
	Entries []keyEntry `yaml:"keys"`
}

// YAMLKeyTrans is a [KeyTrans] backed by a table loaded from a YAML file.
type YAMLKeyTrans struct {
	entries map[string]keyEntry
}

// NewYAMLKeyTrans loads a key-translation table from path.
func NewYAMLKeyTrans(path string) (*YAMLKeyTrans, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table keyTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	entries := make(map[string]keyEntry, len(table.Entries))
	for _, e := range table.Entries {
		entries[e.Key] = e
	}
	return &YAMLKeyTrans{entries: entries}, nil
}

// Translate looks up key and picks the variant matching mods and modes,
// most specific first: application-mode variants win over modifier
// variants, which win over the plain default.
func (k *YAMLKeyTrans) Translate(key string, mods KeyModifiers, modes EmulatorMode) ([]byte, bool) {
	e, ok := k.entries[key]
	if !ok {
		return nil, false
	}
	if modes&ModeAppCuKeys != 0 && e.AppCuKey != "" {
		return []byte(e.AppCuKey), true
	}
	if modes&ModeAppKeyPad != 0 && e.AppKeyPd != "" {
		return []byte(e.AppKeyPd), true
	}
	if mods&ModControl != 0 && e.Control != "" {
		return []byte(e.Control), true
	}
	if mods&ModShift != 0 && e.Shift != "" {
		return []byte(e.Shift), true
	}
	if e.Normal != "" {
		return []byte(e.Normal), true
	}
	return nil, false
}

var _ KeyTrans = (*YAMLKeyTrans)(nil)

// DefaultKeyTable is a minimal built-in table covering the keys every VT100
// application expects to work even without a loaded YAML file: arrow keys,
// Home/End and the function-key row, with application-cursor-key variants.
var DefaultKeyTable = map[string]keyEntry{
	"Up":    {Normal: "\x1b[A", AppCuKey: "\x1bOA"},
	"Down":  {Normal: "\x1b[B", AppCuKey: "\x1bOB"},
	"Right": {Normal: "\x1b[C", AppCuKey: "\x1bOC"},
	"Left":  {Normal: "\x1b[D", AppCuKey: "\x1bOD"},
	"Home":  {Normal: "\x1b[H", AppCuKey: "\x1bOH"},
	"End":   {Normal: "\x1b[F", AppCuKey: "\x1bOF"},
	"F1":    {Normal: "\x1bOP"},
	"F2":    {Normal: "\x1bOQ"},
	"F3":    {Normal: "\x1bOR"},
	"F4":    {Normal: "\x1bOS"},
}

// NewDefaultKeyTrans returns a [KeyTrans] backed by [DefaultKeyTable],
// useful when no YAML override file is configured.
func NewDefaultKeyTrans() *YAMLKeyTrans {
	return &YAMLKeyTrans{entries: DefaultKeyTable}
}
