package status

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
)

// DefaultSpinnerStyle is the frame set used when none is configured.
const DefaultSpinnerStyle = "minidot"

var spinnerStyles = map[string]spinner.Spinner{
	"line":     spinner.Line,
	"dot":      spinner.Dot,
	"minidot":  spinner.MiniDot,
	"jump":     spinner.Jump,
	"pulse":    spinner.Pulse,
	"points":   spinner.Points,
	"meter":    spinner.Meter,
	"ellipsis": spinner.Ellipsis,
}

// SpinnerStyle looks up a named frame set.
func SpinnerStyle(name string) (spinner.Spinner, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultSpinnerStyle
	}
	s, ok := spinnerStyles[name]
	if !ok {
		return spinner.Spinner{}, fmt.Errorf("unknown spinner style %q (available: %s)", name, strings.Join(SpinnerStyleNames(), ", "))
	}
	return s, nil
}

// SpinnerStyleNames returns the known frame set names, sorted.
func SpinnerStyleNames() []string {
	names := make([]string, 0, len(spinnerStyles))
	for name := range spinnerStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
