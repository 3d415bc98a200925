package tokens

import (
	"fmt"
	"strings"
)

// Mode selects how list content is interpreted.
type Mode int

const (
	// ModeText compares entries as strings.
	ModeText Mode = iota
	// ModeNumeric compares entries as floating point numbers.
	ModeNumeric
)

// String returns the canonical configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNumeric:
		return "numeric"
	case ModeText:
		return "text"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a configuration value to a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "numeric", "number", "numbers":
		return ModeNumeric, nil
	case "text", "string", "strings":
		return ModeText, nil
	default:
		return ModeText, fmt.Errorf("comparison mode: unsupported value %q", value)
	}
}

// Config is the process-wide comparison configuration shared by all lists.
type Config struct {
	Mode          Mode
	CaseSensitive bool
}

// foldsCase reports whether text values must be compared on their lowercase form.
func (c Config) foldsCase() bool {
	return c.Mode == ModeText && !c.CaseSensitive
}
