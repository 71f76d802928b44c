// Package chat runs the read/process/print loop that feeds user requests to
// a Handler and renders the records it returns.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"termagent/internal/status"
	"termagent/internal/styles"
)

const (
	DefaultPrompt = "You> "
	DefaultTitle  = "COMMAND LINE CHAT AGENT"
)

// DefaultExitKeywords end the loop when typed on their own.
var DefaultExitKeywords = []string{"exit", "quit", "q"}

var (
	// ErrTerminated is returned by Run once the loop has already finished.
	ErrTerminated = errors.New("chat: interface terminated")

	errNoResult = errors.New("handler returned no result")
)

// State is the loop's position in its request cycle.
type State int32

const (
	AwaitingInput State = iota
	Processing
	DisplayingResult
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting-input"
	case Processing:
		return "processing"
	case DisplayingResult:
		return "displaying-result"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Options configures an Interface.
type Options struct {
	In      io.Reader
	Out     io.Writer
	Handler Handler

	// Status is the display the handler reports through. When set, the loop
	// stops any spinner the handler left running before printing a result.
	Status *status.Display

	Logger       *zap.Logger
	ExitKeywords []string
	Prompt       string
	Title        string
	HideBanner   bool
	Renderer     *lipgloss.Renderer
}

// Interface is the interactive request loop.
type Interface struct {
	in         io.Reader
	out        io.Writer
	handler    Handler
	display    *status.Display
	logger     *zap.Logger
	styles     styles.Styles
	title      string
	hideBanner bool

	mu       sync.RWMutex
	keywords []string
	prompt   string

	state atomic.Int32
}

// New returns an Interface. In, Out and Handler are required.
func New(opts Options) *Interface {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.NewRenderer(opts.Out)
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	c := &Interface{
		in:         opts.In,
		out:        opts.Out,
		handler:    opts.Handler,
		display:    opts.Status,
		logger:     logger,
		styles:     styles.New(r),
		title:      title,
		hideBanner: opts.HideBanner,
	}
	c.SetExitKeywords(opts.ExitKeywords)
	c.SetPrompt(opts.Prompt)
	return c
}

// State reports where the loop currently is.
func (c *Interface) State() State {
	return State(c.state.Load())
}

func (c *Interface) setState(s State) {
	c.state.Store(int32(s))
}

// SetExitKeywords replaces the exit keyword set. Keywords are matched
// case-insensitively after trimming; an empty set restores the defaults.
func (c *Interface) SetExitKeywords(keywords []string) {
	var normalized []string
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			normalized = append(normalized, k)
		}
	}
	if len(normalized) == 0 {
		normalized = append(normalized, DefaultExitKeywords...)
	}

	c.mu.Lock()
	c.keywords = normalized
	c.mu.Unlock()
}

// ExitKeywords returns the active exit keywords.
func (c *Interface) ExitKeywords() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.keywords...)
}

// SetPrompt changes the input prompt; "" restores the default.
func (c *Interface) SetPrompt(prompt string) {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	c.mu.Lock()
	c.prompt = prompt
	c.mu.Unlock()
}

// IsExit reports whether line is one of the exit keywords.
func (c *Interface) IsExit(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, k := range c.keywords {
		if line == k {
			return true
		}
	}
	return false
}

type inputLine struct {
	text string
	err  error
}

// Run prompts for lines until an exit keyword, end of input or ctx is
// cancelled. Handler failures are shown as error records and never end the
// loop; a failed write to the output does.
//
// Input is read by a separate goroutine. It stops once the loop has
// returned and its current read completes, so an input that never
// delivers another line or EOF keeps it blocked in that read.
func (c *Interface) Run(ctx context.Context) error {
	if c.State() == Terminated {
		return ErrTerminated
	}
	defer c.setState(Terminated)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !c.hideBanner {
		if err := writeWelcome(c.out, c.title, c.ExitKeywords(), c.styles); err != nil {
			return fmt.Errorf("write banner: %w", err)
		}
	}

	lines := c.readLines(ctx)
	for {
		c.setState(AwaitingInput)
		if err := c.writePrompt(); err != nil {
			return err
		}

		var line inputLine
		var ok bool
		select {
		case <-ctx.Done():
			c.logger.Info("interrupted")
			return c.farewell("\n\nInterrupted by user. Exiting...")
		case line, ok = <-lines:
		}
		if !ok {
			c.logger.Info("end of input")
			return c.farewell("\nGoodbye!")
		}
		if line.err != nil {
			return fmt.Errorf("read input: %w", line.err)
		}

		request := strings.TrimSpace(line.text)
		if c.IsExit(request) {
			return c.farewell("Goodbye!")
		}
		if request == "" {
			continue
		}

		fmt.Fprintln(c.out)
		if _, err := c.Submit(ctx, request); err != nil {
			return err
		}
	}
}

// Submit sends one request through the handler and renders the outcome.
// The returned error is only ever a display failure; handler failures come
// back as an error record.
func (c *Interface) Submit(ctx context.Context, request string) (*Result, error) {
	c.setState(Processing)
	result := c.process(ctx, request)

	c.setState(DisplayingResult)
	if err := c.DisplayResult(result); err != nil {
		return result, err
	}
	return result, nil
}

// DisplayResult writes r as a result block.
func (c *Interface) DisplayResult(r *Result) error {
	return WriteResult(c.out, r, c.styles)
}

func (c *Interface) process(ctx context.Context, request string) *Result {
	logger := c.logger.With(zap.String("request_id", uuid.NewString()))
	logger.Info("processing request", zap.String("request", request))
	start := time.Now()

	result, err := c.invoke(ctx, request)
	if err == nil && result == nil {
		err = errNoResult
	}

	if c.display != nil {
		if stopErr := c.display.StopSpinner(); stopErr != nil {
			logger.Warn("failed to stop spinner", zap.Error(stopErr))
		}
	}

	elapsed := time.Since(start)
	if err != nil {
		logger.Warn("request failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		if c.display != nil {
			if dispErr := c.display.Error("Error: " + err.Error()); dispErr != nil {
				logger.Warn("failed to show error status", zap.Error(dispErr))
			}
		}
		return ErrorResult(err)
	}

	logger.Info("request completed",
		zap.String("status", result.Status()),
		zap.Int("fields", result.Len()),
		zap.Duration("elapsed", elapsed),
	)
	return result
}

// invoke calls the handler, turning a panic into an error.
func (c *Interface) invoke(ctx context.Context, request string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	return c.handler.ProcessRequest(ctx, request)
}

func (c *Interface) farewell(message string) error {
	if _, err := fmt.Fprintln(c.out, message); err != nil {
		return fmt.Errorf("write farewell: %w", err)
	}
	return nil
}

func (c *Interface) writePrompt() error {
	c.mu.RLock()
	prompt := c.prompt
	c.mu.RUnlock()

	if _, err := io.WriteString(c.out, c.styles.Label.Render(prompt)); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	return nil
}

// readLines feeds input lines to the loop until the input ends or ctx is
// cancelled. Lines have no length limit. The channel is closed at end of
// input.
func (c *Interface) readLines(ctx context.Context) <-chan inputLine {
	ch := make(chan inputLine)
	go func() {
		defer close(ch)
		reader := bufio.NewReader(c.in)
		for {
			text, err := reader.ReadString('\n')
			var line inputLine
			switch {
			case err == nil || (errors.Is(err, io.EOF) && text != ""):
				line.text = strings.TrimRight(text, "\r\n")
			case errors.Is(err, io.EOF):
				return
			default:
				line.err = err
			}
			select {
			case ch <- line:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}
