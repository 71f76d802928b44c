package onboarding

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"termagent/config"
	"termagent/internal/agent"
	"termagent/internal/status"
	"termagent/internal/styles"
)

const wizardWidth = 80

// ErrCancelled is returned when the user abandons the setup form.
var ErrCancelled = errors.New("setup cancelled")

// Choices holds the answers collected by the setup form.
type Choices struct {
	Agent        string
	SpinnerStyle string
	Banner       bool
}

// IsFirstRun reports whether there is no config file at path yet.
func IsFirstRun(path string) bool {
	return !config.Exists(path)
}

// ChoicesFrom seeds the form with the current configuration.
func ChoicesFrom(cfg *config.Config) Choices {
	return Choices{
		Agent:        cfg.Agent,
		SpinnerStyle: cfg.Spinner.Style,
		Banner:       cfg.Banner,
	}
}

// Apply copies the answers onto cfg.
func (c Choices) Apply(cfg *config.Config) {
	cfg.Agent = c.Agent
	cfg.Spinner.Style = c.SpinnerStyle
	cfg.Banner = c.Banner
}

// RunWizard asks the user for their preferences and saves them to path,
// keeping every other setting already in the file.
func RunWizard(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		cfg = config.Default()
	}

	choices := ChoicesFrom(cfg)
	if err := newForm(&choices).Run(); err != nil {
		return nil, ErrCancelled
	}
	choices.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := config.Save(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newForm(choices *Choices) *huh.Form {
	agentOptions := make([]huh.Option[string], 0, len(agent.All()))
	for _, def := range agent.All() {
		agentOptions = append(agentOptions, huh.NewOption(fmt.Sprintf("%s - %s", def.Name, def.Description), def.Name))
	}

	spinnerOptions := make([]huh.Option[string], 0)
	for _, name := range status.SpinnerStyleNames() {
		s, _ := status.SpinnerStyle(name)
		label := name
		if len(s.Frames) > 0 {
			label = fmt.Sprintf("%-9s %s", name, s.Frames[0])
		}
		spinnerOptions = append(spinnerOptions, huh.NewOption(label, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("termagent setup").
				Description("termagent reads a request, shows progress while an agent\nworks on it and prints the result.\n\nThis setup picks the agent and the look of the status line.\n\nPress Enter to continue."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Agent").
				Description("Handler used for every request").
				Options(agentOptions...).
				Value(&choices.Agent),
			huh.NewSelect[string]().
				Title("Spinner").
				Description("Animation shown during long steps").
				Options(spinnerOptions...).
				Value(&choices.SpinnerStyle),
			huh.NewConfirm().
				Title("Show the welcome banner?").
				Value(&choices.Banner).
				Affirmative("Yes").
				Negative("No"),
		),
	).
		WithTheme(createHuhTheme()).
		WithWidth(wizardWidth).
		WithShowHelp(false).
		WithShowErrors(false)
}

func createHuhTheme() *huh.Theme {
	fg := lipgloss.Color("#dddddd")
	bg := lipgloss.Color("#101012")

	theme := huh.ThemeBase16()
	base := lipgloss.NewStyle().Foreground(fg)

	theme.Focused.Base = base.MarginLeft(1)
	theme.Focused.Title = base.Foreground(styles.Primary).Bold(true)
	theme.Focused.Description = base
	theme.Focused.NoteTitle = base.Foreground(styles.Primary).Bold(true)
	theme.Focused.SelectSelector = base.Foreground(styles.Primary).Bold(true)
	theme.Focused.SelectedOption = base.Foreground(styles.Primary).Bold(true)
	theme.Focused.FocusedButton = base.Background(styles.Primary).Foreground(bg).Bold(true).Padding(0, 2)
	theme.Focused.BlurredButton = base.Foreground(styles.Muted).Padding(0).MarginLeft(1)

	theme.Blurred.Base = base
	theme.Blurred.Title = base.Foreground(styles.Muted)
	theme.Blurred.NoteTitle = base.Foreground(styles.Muted)

	return theme
}
