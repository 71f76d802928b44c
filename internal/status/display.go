// Package status renders a single overwritable line of progress feedback,
// optionally animated by a spinner that repaints from its own goroutine.
package status

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"termagent/internal/styles"
)

const (
	defaultClearWidth = 80
	defaultInterval   = 100 * time.Millisecond
)

// Message is one recorded status update.
type Message struct {
	Kind Kind
	Text string
	Time time.Time
}

// Options configures a Display. Zero values select the defaults.
type Options struct {
	Glyphs *Glyphs
	// Frames supplies the animation frames and, unless Interval is set,
	// the repaint interval.
	Frames     spinner.Spinner
	Interval   time.Duration
	ClearWidth int
	Renderer   *lipgloss.Renderer
}

// Display owns one terminal status line. It is safe for concurrent use.
type Display struct {
	out io.Writer

	// ctl serialises spinner start and stop so a join never runs while
	// another caller is starting a worker.
	ctl  sync.Mutex
	task *spinnerTask

	// mu guards every write to out and the fields below.
	mu       sync.Mutex
	glyphs   Glyphs
	styles   styles.Styles
	frames   []string
	interval time.Duration
	width    int
	kind     Kind
	message  string
	frame    int
	spinning bool
	history  []Message
}

type spinnerTask struct {
	stop chan struct{}
	done chan struct{}
	err  error
}

// New returns a Display writing to out.
func New(out io.Writer, opts Options) *Display {
	glyphs := DefaultGlyphs()
	if opts.Glyphs != nil {
		glyphs = *opts.Glyphs
	}

	frames := opts.Frames
	if len(frames.Frames) == 0 {
		frames = spinner.MiniDot
		frames.FPS = defaultInterval
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = frames.FPS
	}
	if interval <= 0 {
		interval = defaultInterval
	}

	r := opts.Renderer
	if r == nil {
		r = lipgloss.NewRenderer(out)
	}

	return &Display{
		out:      out,
		glyphs:   glyphs,
		styles:   styles.New(r),
		frames:   append([]string(nil), frames.Frames...),
		interval: interval,
		width:    clearWidth(out, opts.ClearWidth),
		kind:     Info,
	}
}

func clearWidth(out io.Writer, configured int) int {
	if configured > 0 {
		return configured
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 1 {
			return w - 1
		}
	}
	return defaultClearWidth
}

// Update replaces the status line with the glyph for kind and message.
func (d *Display) Update(kind Kind, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeStatus(kind, message, false)
}

// Complete stops any spinner and prints a final success line.
func (d *Display) Complete(message string) error {
	return d.finish(Success, message)
}

// Error stops any spinner and prints a final error line.
func (d *Display) Error(message string) error {
	return d.finish(Error, message)
}

func (d *Display) finish(kind Kind, message string) error {
	d.ctl.Lock()
	defer d.ctl.Unlock()

	if err := d.stopLocked(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeStatus(kind, message, true)
}

// StartSpinner animates message until StopSpinner is called. A spinner that
// is already running is stopped first, so at most one worker exists.
func (d *Display) StartSpinner(message string) error {
	d.ctl.Lock()
	defer d.ctl.Unlock()

	if err := d.stopLocked(); err != nil {
		return err
	}

	d.mu.Lock()
	d.kind = Processing
	d.message = message
	d.frame = 0
	d.spinning = true
	err := d.drawFrame()
	if err != nil {
		d.spinning = false
	}
	interval := d.interval
	d.mu.Unlock()
	if err != nil {
		return err
	}

	t := &spinnerTask{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	d.task = t
	go d.spin(t, interval)
	return nil
}

// StopSpinner halts the animation and clears its line. It waits for the
// worker to exit, so nothing is drawn after it returns. Calling it with no
// spinner running does nothing.
func (d *Display) StopSpinner() error {
	d.ctl.Lock()
	defer d.ctl.Unlock()
	return d.stopLocked()
}

func (d *Display) stopLocked() error {
	t := d.task
	if t == nil {
		return nil
	}
	d.task = nil
	close(t.stop)
	<-t.done

	d.mu.Lock()
	defer d.mu.Unlock()
	d.spinning = false
	clearErr := d.clearLine()
	if t.err != nil {
		return t.err
	}
	return clearErr
}

func (d *Display) spin(t *spinnerTask, interval time.Duration) {
	defer close(t.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
		}

		d.mu.Lock()
		d.frame++
		err := d.drawFrame()
		d.mu.Unlock()
		if err != nil {
			t.err = err
			return
		}
	}
}

// Spinning reports whether a spinner worker is running.
func (d *Display) Spinning() bool {
	d.ctl.Lock()
	defer d.ctl.Unlock()
	return d.task != nil
}

// Current returns the kind and text of the most recent status.
func (d *Display) Current() (Kind, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.kind, d.message
}

// History returns a copy of every status written through Update, Complete
// and Error.
func (d *Display) History() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Message(nil), d.history...)
}

// SetGlyphs swaps the glyph table; the next line drawn uses it.
func (d *Display) SetGlyphs(g Glyphs) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.glyphs = g
}

// writeStatus must be called with mu held.
func (d *Display) writeStatus(kind Kind, message string, final bool) error {
	d.kind = kind
	d.message = message
	d.history = append(d.history, Message{Kind: kind, Text: message, Time: time.Now()})

	var b strings.Builder
	b.WriteString(d.clearSequence())
	b.WriteString(d.glyphs.Glyph(kind))
	b.WriteString(" ")
	b.WriteString(d.styleFor(kind).Render(message))
	if final {
		b.WriteString("\n")
	}
	_, err := io.WriteString(d.out, b.String())
	return err
}

// drawFrame must be called with mu held.
func (d *Display) drawFrame() error {
	if !d.spinning || len(d.frames) == 0 {
		return nil
	}
	frame := d.frames[d.frame%len(d.frames)]
	line := d.clearSequence() + d.styles.Spinner.Render(frame) + " " + d.message
	_, err := io.WriteString(d.out, line)
	return err
}

func (d *Display) clearLine() error {
	_, err := io.WriteString(d.out, d.clearSequence())
	return err
}

func (d *Display) clearSequence() string {
	return "\r" + strings.Repeat(" ", d.width) + "\r"
}

func (d *Display) styleFor(kind Kind) lipgloss.Style {
	switch kind {
	case Success:
		return d.styles.Success
	case Error:
		return d.styles.Error
	case Thinking, Info:
		return d.styles.Muted
	default:
		return d.styles.Value
	}
}
