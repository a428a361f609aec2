// Package output renders command results for terminals and for machines.
package output

import (
	"fmt"
	"strings"
)

// Mode selects how results are rendered.
type Mode string

// Output modes.
const (
	ModeAuto  Mode = "auto"  // text on a terminal, JSON otherwise
	ModeText  Mode = "text"  // styled human-readable lines
	ModeJSON  Mode = "json"  // indented JSON
	ModeYAML  Mode = "yaml"  // YAML with the JSON key order
	ModeTable Mode = "table" // go-pretty tables
)

// Modes lists every mode in the order shown in help text.
var Modes = []Mode{ModeAuto, ModeText, ModeJSON, ModeYAML, ModeTable}

// ParseMode validates a mode name. The empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	m := Mode(strings.ToLower(s))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown output mode %q", s)
}

// ModeNames returns the mode names as strings, for flag completion.
func ModeNames() []string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return names
}
