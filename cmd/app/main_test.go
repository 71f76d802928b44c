package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termagent/config"
	"termagent/version"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(func() { configPath, logFile, agentName, verbose, noBanner = "", "", "", false, false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, version.String()+"\n", execute(t, "version"))
}

func TestConfigPathHonoursFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	assert.Equal(t, path+"\n", execute(t, "config", "path", "--config", path))
}

func TestConfigInitWritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out := execute(t, "config", "init", "--config", path)
	assert.Contains(t, out, "Wrote default configuration")
	assert.True(t, config.Exists(path))

	require.NoError(t, os.WriteFile(path, []byte("agent: basic\n"), 0644))
	out = execute(t, "config", "init", "--config", path)
	assert.Contains(t, out, "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "agent: basic\n", string(data))
}

func TestAskCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pace: 0\nbanner: false\n"), 0644))

	out := execute(t, "ask", "--config", path, "calculate", "3", "*", "5")
	assert.Contains(t, out, "  result: 15\n")
}
