package config

import (
	"errors"
	"os"
	"path/filepath"
)

const AppName = "termagent"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "TERMAGENT_CONFIG_DIR"

func GetConfigDir() (string, error) {
	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", AppName)
	}

	// Ensure the directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.yaml"), nil
}

func GetLogsDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	logsDir := filepath.Join(configDir, "logs")

	// Ensure the directory exists
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return "", err
	}

	return logsDir, nil
}

func GetDefaultLogPath() (string, error) {
	logsDir, err := GetLogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(logsDir, "chat.log"), nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// EnsureConfigExists writes the commented default file to path unless one
// is already there.
func EnsureConfigExists(path string) error {
	if Exists(path) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}

const defaultConfigYAML = `# termagent configuration

# Handler used for each request: basic, task or streaming.
agent: task

prompt: "You> "

# Typed on their own (any case) these end the session.
exit_keywords: [exit, quit, q]

banner: true

# Scales the simulated work delays of the built-in agents. 0 disables them.
pace: 1.0

spinner:
  # line, dot, minidot, jump, pulse, points, meter or ellipsis
  style: minidot
  interval: 100ms

status:
  # Columns blanked when a status line is replaced. 0 uses the terminal width.
  clear_width: 0
  # Override the symbol shown for a status kind.
  glyphs: {}
  #   thinking: "?"
  #   processing: "*"
  #   success: "+"
  #   error: "!"
  #   info: "i"

log:
  # Empty disables logging. ${VAR} references are expanded.
  file: ""
  level: info
`
