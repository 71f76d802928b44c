package doctor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"golang.org/x/term"

	"termagent/config"
	"termagent/internal/agent"
)

type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

type CheckResult struct {
	Name    string
	Status  Status
	Summary string
	Details []string
	Actions []string
}

type Report struct {
	Checks []CheckResult
}

func (r Report) HasFailures() bool {
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			return true
		}
	}
	return false
}

func (r Report) ExitCode() int {
	if r.HasFailures() {
		return 1
	}
	return 0
}

// Options points the checks at a config file and the terminal streams.
type Options struct {
	ConfigPath string
	Stdin      *os.File
	Stdout     *os.File
}

func GenerateReport(opts Options) Report {
	var checks []CheckResult

	checks = append(checks, checkMetadata())

	configResult, cfg := checkConfig(opts.ConfigPath)
	checks = append(checks, configResult)

	checks = append(checks, checkLogging(cfg))
	checks = append(checks, checkTerminal(opts.Stdin, opts.Stdout))

	return Report{Checks: checks}
}

func checkMetadata() CheckResult {
	result := CheckResult{Name: "Runtime Metadata", Status: StatusOK}

	summaryParts := []string{fmt.Sprintf("go runtime %s", runtime.Version())}
	buildInfo, ok := debug.ReadBuildInfo()
	if ok && buildInfo != nil && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		summaryParts = append(summaryParts, fmt.Sprintf("module %s", buildInfo.Main.Version))
	}
	result.Summary = strings.Join(summaryParts, ", ")
	result.Details = append(result.Details, fmt.Sprintf("OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH))

	if execPath, err := os.Executable(); err != nil {
		result.Status = StatusWarn
		result.Details = append(result.Details, fmt.Sprintf("Could not resolve executable path: %v", err))
	} else {
		result.Details = append(result.Details, fmt.Sprintf("Executable: %s", execPath))
	}

	if ok && buildInfo != nil {
		for _, setting := range buildInfo.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				result.Details = append(result.Details, fmt.Sprintf("VCS Revision: %s", setting.Value))
			}
		}
	}

	return result
}

func checkConfig(path string) (CheckResult, *config.Config) {
	result := CheckResult{Name: "Configuration", Status: StatusOK}

	if path == "" {
		resolved, err := config.GetConfigFile()
		if err != nil {
			result.Status = StatusFail
			result.Summary = "Unable to resolve config directory"
			result.Details = append(result.Details, err.Error())
			result.Actions = append(result.Actions, "verify HOME is set and accessible")
			return result, nil
		}
		path = resolved
	}
	result.Details = append(result.Details, fmt.Sprintf("Config file: %s", path))

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Status = StatusWarn
			result.Summary = "config.yaml not found, using defaults"
			result.Actions = append(result.Actions, "run 'termagent setup' or 'termagent config init'")
			return result, config.Default()
		}
		result.Status = StatusFail
		result.Summary = "Unable to read config.yaml"
		result.Details = append(result.Details, err.Error())
		return result, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		result.Status = StatusFail
		result.Summary = "Failed to parse config.yaml"
		result.Details = append(result.Details, err.Error())
		result.Actions = append(result.Actions, "fix the reported fields in config.yaml")
		return result, nil
	}

	if _, ok := agent.Lookup(cfg.Agent); !ok {
		result.Status = StatusFail
		result.Summary = fmt.Sprintf("Unknown agent %q", cfg.Agent)
		result.Actions = append(result.Actions, fmt.Sprintf("set agent to one of: %s", strings.Join(agent.Names(), ", ")))
		return result, cfg
	}

	result.Summary = fmt.Sprintf("Config loaded (agent %s, spinner %s)", cfg.Agent, cfg.Spinner.Style)
	return result, cfg
}

func checkLogging(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "Logging", Status: StatusOK}

	if cfg == nil {
		result.Status = StatusWarn
		result.Summary = "Skipped, configuration unavailable"
		return result
	}
	if cfg.Log.File == "" {
		result.Summary = "Disabled"
		result.Actions = append(result.Actions, "set log.file or pass --log-file to record requests")
		return result
	}

	dir := filepath.Dir(cfg.Log.File)
	result.Details = append(result.Details, fmt.Sprintf("Log file: %s", cfg.Log.File))
	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Status = StatusFail
		result.Summary = "Cannot create log directory"
		result.Details = append(result.Details, err.Error())
		return result
	}
	if err := checkDirWritable(dir); err != nil {
		result.Status = StatusFail
		result.Summary = "Log directory not writable"
		result.Details = append(result.Details, err.Error())
		result.Actions = append(result.Actions, "adjust permissions on the log directory")
		return result
	}

	result.Summary = fmt.Sprintf("Writing %s logs", cfg.Log.Level)
	return result
}

func checkDirWritable(dir string) error {
	file, err := os.CreateTemp(dir, "doctor-")
	if err != nil {
		return err
	}
	name := file.Name()
	file.Close()
	if err := os.Remove(name); err != nil {
		return err
	}
	return nil
}

func checkTerminal(stdin, stdout *os.File) CheckResult {
	result := CheckResult{Name: "Terminal", Status: StatusOK}

	inTTY := stdin != nil && term.IsTerminal(int(stdin.Fd()))
	outTTY := stdout != nil && term.IsTerminal(int(stdout.Fd()))

	result.Details = append(result.Details,
		fmt.Sprintf("stdin is a terminal: %t", inTTY),
		fmt.Sprintf("stdout is a terminal: %t", outTTY),
	)

	if outTTY {
		if w, h, err := term.GetSize(int(stdout.Fd())); err == nil {
			result.Details = append(result.Details, fmt.Sprintf("Size: %dx%d", w, h))
		}
	}

	switch {
	case inTTY && outTTY:
		result.Summary = "Interactive terminal"
	case !outTTY:
		result.Status = StatusWarn
		result.Summary = "Output is not a terminal; status lines will not repaint in place"
	default:
		result.Status = StatusWarn
		result.Summary = "Input is not a terminal; requests are read from a pipe"
	}
	return result
}
