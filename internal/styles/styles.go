// Package styles holds the terminal palette shared by the status line, the
// result block and the welcome banner.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var (
	Primary   = lipgloss.Color("#f7c0af") // orangish/peach
	Secondary = lipgloss.Color("#3ccad7") // cyan
	Success   = lipgloss.Color("#87bf47") // green
	ErrorCol  = lipgloss.Color("#bf5d47") // red
	Muted     = lipgloss.Color("#7f7f7f") // gray
)

// Styles is the set of rendered styles bound to one output.
type Styles struct {
	renderer *lipgloss.Renderer

	Label     lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Section   lipgloss.Style
	Spinner   lipgloss.Style
	Separator lipgloss.Style
}

// New builds the styles for r. Writers that are not terminals get an ASCII
// profile from lipgloss, so every style renders as plain text there.
func New(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		renderer:  r,
		Label:     r.NewStyle().Foreground(Primary).Bold(true),
		Value:     r.NewStyle().Foreground(Secondary),
		Muted:     r.NewStyle().Foreground(Muted),
		Success:   r.NewStyle().Foreground(Success),
		Error:     r.NewStyle().Foreground(ErrorCol),
		Section:   r.NewStyle().Foreground(Primary).Bold(true),
		Spinner:   r.NewStyle().Foreground(Primary),
		Separator: r.NewStyle().Foreground(Muted),
	}
}

// Renderer returns the renderer the styles were built from.
func (s Styles) Renderer() *lipgloss.Renderer {
	return s.renderer
}

// Gradient renders text with a per-rune blend from Primary to Secondary.
// Anything short of a TrueColor profile gets the flat Section style instead.
func (s Styles) Gradient(text string) string {
	if s.renderer == nil || s.renderer.ColorProfile() != termenv.TrueColor {
		return s.Section.Render(text)
	}
	from, err := colorful.Hex(string(Primary))
	if err != nil {
		return s.Section.Render(text)
	}
	to, err := colorful.Hex(string(Secondary))
	if err != nil {
		return s.Section.Render(text)
	}

	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLuv(to, t).Clamped()
		b.WriteString(s.renderer.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Bold(true).
			Render(string(r)))
	}
	return b.String()
}
