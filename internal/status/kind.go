package status

import (
	"fmt"
	"strings"
)

// Kind classifies a status line.
type Kind int

const (
	Thinking Kind = iota
	Processing
	Success
	Error
	Info
)

var kindNames = [...]string{
	Thinking:   "thinking",
	Processing: "processing",
	Success:    "success",
	Error:      "error",
	Info:       "info",
}

// Kinds lists every status kind in declaration order.
func Kinds() []Kind {
	return []Kind{Thinking, Processing, Success, Error, Info}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind from its lower-case name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status kind %q", name)
}

// Glyphs maps each kind to the symbol printed in front of its message.
type Glyphs [len(kindNames)]string

// DefaultGlyphs returns the stock emoji table.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Thinking:   "🤔",
		Processing: "⚙️",
		Success:    "✅",
		Error:      "❌",
		Info:       "ℹ️",
	}
}

// Glyph returns the symbol for k, or an empty string for an unknown kind.
func (g Glyphs) Glyph(k Kind) string {
	if k < 0 || int(k) >= len(g) {
		return ""
	}
	return g[k]
}

// WithOverrides returns a copy of g where each named kind takes the given glyph.
// Empty glyphs are ignored so a partial table keeps the defaults.
func (g Glyphs) WithOverrides(overrides map[string]string) (Glyphs, error) {
	out := g
	for name, glyph := range overrides {
		k, err := ParseKind(name)
		if err != nil {
			return g, err
		}
		if glyph == "" {
			continue
		}
		out[k] = glyph
	}
	return out, nil
}
