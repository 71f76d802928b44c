package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"termagent/config"
	"termagent/internal/chat"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Pace = 0
	cfg.Banner = false
	cfg.Status.ClearWidth = 40
	return cfg
}

func TestSessionRunsConfiguredAgent(t *testing.T) {
	var out bytes.Buffer
	session, err := NewSession(testConfig(), strings.NewReader("calculate 6 * 7\nq\n"), &out, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, session.Chat.Run(context.Background()))
	assert.Equal(t, chat.Terminated, session.Chat.State())
	assert.Contains(t, out.String(), "RESULT:")
	assert.Contains(t, out.String(), "  result: 42\n")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestSessionRejectsUnknownAgent(t *testing.T) {
	cfg := testConfig()
	cfg.Agent = "oracle"

	_, err := NewSession(cfg, strings.NewReader(""), &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestSessionApply(t *testing.T) {
	var out bytes.Buffer
	session, err := NewSession(testConfig(), strings.NewReader(""), &out, nil)
	require.NoError(t, err)

	next := testConfig()
	next.ExitKeywords = []string{"bye"}
	next.Status.Glyphs = map[string]string{"success": "OK"}
	require.NoError(t, session.Apply(next))

	assert.True(t, session.Chat.IsExit("BYE"))
	assert.False(t, session.Chat.IsExit("q"))

	require.NoError(t, session.Display.Complete("done"))
	assert.Contains(t, out.String(), "OK done")
}

func TestAskExitCode(t *testing.T) {
	var out bytes.Buffer
	code, err := Ask(context.Background(), testConfig(), "calculate 1 + 1", &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "  result: 2\n")

	out.Reset()
	code, err = Ask(context.Background(), testConfig(), "calculate 1/0", &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "  status: error\n")
}

func TestDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Demo(context.Background(), testConfig(), &out, nil))

	s := out.String()
	for _, req := range taskDemoRequests {
		assert.Contains(t, s, "Request: '"+req+"'")
	}
	assert.Contains(t, s, "  result: 84\n")
	assert.Contains(t, s, "  processed: PROCESS THIS TEXT WORD BY WORD\n")
	assert.Equal(t, len(taskDemoRequests)+1, strings.Count(s, "RESULT:"))
}

func TestDemoStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Pace = 1
	err := Demo(ctx, cfg, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
