package onboarding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termagent/config"
)

func TestIsFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.True(t, IsFirstRun(path))

	require.NoError(t, os.WriteFile(path, []byte("agent: task\n"), 0644))
	assert.False(t, IsFirstRun(path))
}

func TestChoicesRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Prompt = ">> "

	c := ChoicesFrom(cfg)
	assert.Equal(t, cfg.Agent, c.Agent)
	assert.Equal(t, cfg.Spinner.Style, c.SpinnerStyle)

	c.Agent = "streaming"
	c.SpinnerStyle = "line"
	c.Banner = false
	c.Apply(cfg)

	assert.Equal(t, "streaming", cfg.Agent)
	assert.Equal(t, "line", cfg.Spinner.Style)
	assert.False(t, cfg.Banner)
	assert.Equal(t, ">> ", cfg.Prompt, "fields outside the form are untouched")
	require.NoError(t, cfg.Validate())
}

func TestNewFormBuilds(t *testing.T) {
	c := ChoicesFrom(config.Default())
	assert.NotNil(t, newForm(&c))
}
