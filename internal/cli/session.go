package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"termagent/config"
	"termagent/internal/agent"
	"termagent/internal/chat"
	"termagent/internal/status"
)

// Session is a chat loop wired to its status display and agent.
type Session struct {
	Chat    *chat.Interface
	Display *status.Display
	Handler chat.Handler
}

// NewSession builds the display, agent and chat loop described by cfg.
func NewSession(cfg *config.Config, in io.Reader, out io.Writer, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	frames, err := status.SpinnerStyle(cfg.Spinner.Style)
	if err != nil {
		return nil, err
	}
	glyphs, err := cfg.Glyphs()
	if err != nil {
		return nil, fmt.Errorf("status glyphs: %w", err)
	}

	renderer := lipgloss.NewRenderer(out)
	display := status.New(out, status.Options{
		Glyphs:     &glyphs,
		Frames:     frames,
		Interval:   cfg.Spinner.Interval,
		ClearWidth: cfg.Status.ClearWidth,
		Renderer:   renderer,
	})

	handler, err := agent.New(cfg.Agent, agent.Settings{Display: display, Pace: cfg.Pace})
	if err != nil {
		return nil, err
	}

	ci := chat.New(chat.Options{
		In:           in,
		Out:          out,
		Handler:      handler,
		Status:       display,
		Logger:       logger.With(zap.String("agent", cfg.Agent)),
		ExitKeywords: cfg.ExitKeywords,
		Prompt:       cfg.Prompt,
		HideBanner:   !cfg.Banner,
		Renderer:     renderer,
	})

	return &Session{Chat: ci, Display: display, Handler: handler}, nil
}

// Apply pushes the settings that can change mid-session into s. The agent
// and spinner are fixed for the life of the session.
func (s *Session) Apply(cfg *config.Config) error {
	s.Chat.SetPrompt(cfg.Prompt)
	s.Chat.SetExitKeywords(cfg.ExitKeywords)

	glyphs, err := cfg.Glyphs()
	if err != nil {
		return err
	}
	s.Display.SetGlyphs(glyphs)
	return nil
}
