package status

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// failingWriter accepts the first okWrites writes and fails every later one.
type failingWriter struct {
	okWrites int64
	calls    atomic.Int64
}

var errClosed = errors.New("output closed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.calls.Add(1) > w.okWrites {
		return 0, errClosed
	}
	return len(p), nil
}

// visibleLines replays carriage returns and newlines the way a terminal
// would and returns what is left on screen, one entry per line.
func visibleLines(raw string) []string {
	var lines []string
	var cur []rune
	col := 0
	for _, r := range raw {
		switch r {
		case '\r':
			col = 0
		case '\n':
			lines = append(lines, strings.TrimRight(string(cur), " "))
			cur = cur[:0]
			col = 0
		default:
			if col < len(cur) {
				cur[col] = r
			} else {
				cur = append(cur, r)
			}
			col++
		}
	}
	return append(lines, strings.TrimRight(string(cur), " "))
}

func newTestDisplay(out interface{ Write([]byte) (int, error) }) *Display {
	return New(out, Options{
		Frames:     spinner.Line,
		Interval:   5 * time.Millisecond,
		ClearWidth: 40,
	})
}

func TestUpdateOverwritesLine(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	require.NoError(t, d.Update(Thinking, "Analyzing request..."))
	require.NoError(t, d.Update(Info, "Done"))

	assert.Equal(t, []string{"ℹ️ Done"}, visibleLines(out.String()))

	kind, msg := d.Current()
	assert.Equal(t, Info, kind)
	assert.Equal(t, "Done", msg)
}

func TestCompleteAndErrorEndTheLine(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	require.NoError(t, d.Update(Processing, "working"))
	require.NoError(t, d.Complete("Task completed successfully"))
	require.NoError(t, d.Error("bad expr"))

	assert.Equal(t, []string{"✅ Task completed successfully", "❌ bad expr", ""}, visibleLines(out.String()))
}

func TestStartThenStopLeavesCleanLine(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	require.NoError(t, d.StartSpinner("Processing components"))
	require.NoError(t, d.StopSpinner())

	for _, line := range visibleLines(out.String()) {
		assert.Empty(t, line)
	}
	assert.False(t, d.Spinning())
}

func TestStopSpinnerIsIdempotent(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	require.NoError(t, d.StopSpinner())
	assert.Empty(t, out.String())

	require.NoError(t, d.StartSpinner("x"))
	require.NoError(t, d.StopSpinner())
	written := out.String()

	require.NoError(t, d.StopSpinner())
	require.NoError(t, d.StopSpinner())
	assert.Equal(t, written, out.String())
}

func TestSpinnerRepaintsUntilStopped(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	require.NoError(t, d.StartSpinner("Searching database"))
	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "Searching database") >= 3
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, d.StopSpinner())

	stopped := out.String()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, out.String(), "no frame may be written after StopSpinner returns")
}

func TestSecondStartSupersedesFirst(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	require.NoError(t, d.StartSpinner("first"))
	require.NoError(t, d.StartSpinner("second"))
	assert.True(t, d.Spinning())

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "second") >= 3
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, d.StopSpinner())

	raw := out.String()
	after := raw[strings.Index(raw, "second"):]
	assert.NotContains(t, after, "first", "the superseded worker kept painting")
}

func TestCompleteStopsSpinner(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	require.NoError(t, d.StartSpinner("Processing request"))
	require.NoError(t, d.Complete("Request processed"))
	assert.False(t, d.Spinning())

	assert.Equal(t, []string{"✅ Request processed", ""}, visibleLines(out.String()))
}

func TestUpdateFailureIsReturned(t *testing.T) {
	d := newTestDisplay(&failingWriter{})

	assert.ErrorIs(t, d.Update(Info, "hello"), errClosed)
	assert.ErrorIs(t, d.Complete("done"), errClosed)
	assert.ErrorIs(t, d.StartSpinner("spin"), errClosed)
	assert.False(t, d.Spinning())
}

func TestWorkerFailureSurfacesOnStop(t *testing.T) {
	w := &failingWriter{okWrites: 1}
	d := newTestDisplay(w)

	require.NoError(t, d.StartSpinner("spin"))
	require.Eventually(t, func() bool { return w.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, d.StopSpinner(), errClosed)
	assert.NoError(t, d.StopSpinner())
}

func TestHistoryRecordsUpdates(t *testing.T) {
	d := newTestDisplay(&lockedBuffer{})

	require.NoError(t, d.Update(Thinking, "a"))
	require.NoError(t, d.Update(Processing, "b"))
	require.NoError(t, d.Complete("c"))

	history := d.History()
	require.Len(t, history, 3)
	assert.Equal(t, Thinking, history[0].Kind)
	assert.Equal(t, "b", history[1].Text)
	assert.Equal(t, Success, history[2].Kind)
	assert.False(t, history[2].Time.Before(history[0].Time))
}

func TestSetGlyphs(t *testing.T) {
	out := &lockedBuffer{}
	d := newTestDisplay(out)

	g, err := DefaultGlyphs().WithOverrides(map[string]string{"info": "[i]"})
	require.NoError(t, err)
	d.SetGlyphs(g)

	require.NoError(t, d.Update(Info, "note"))
	assert.Equal(t, []string{"[i] note"}, visibleLines(out.String()))
}
