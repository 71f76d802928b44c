package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"termagent/config"
	"termagent/internal/agent"
	"termagent/internal/cli"
	"termagent/internal/logging"
	"termagent/internal/onboarding"
	"termagent/version"
)

var (
	configPath string
	logFile    string
	verbose    bool
	agentName  string
	noBanner   bool
)

var rootCmd = &cobra.Command{
	Use:   "termagent",
	Short: "Interactive command line chat agent",
	Long: `termagent reads requests line by line, shows live progress while the
agent works, and prints each result as a block of key/value pairs.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := resolveConfigPath()

		if configPath == "" && onboarding.IsFirstRun(path) && term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println("Welcome to termagent! Let's get you set up.")
			if _, err := onboarding.RunWizard(path); err != nil {
				if !errors.Is(err, onboarding.ErrCancelled) {
					log.Fatalf("Setup failed: %v", err)
				}
				fmt.Println("Setup skipped, using defaults. Run `termagent setup` any time.")
			}
		}

		cfg, logger := prepare(path)
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session, err := cli.NewSession(cfg, os.Stdin, os.Stdout, logger)
		if err != nil {
			log.Fatalf("Failed to start chat: %v", err)
		}

		watchCtx, cancelWatch := context.WithCancel(ctx)
		watchDone := make(chan struct{})
		go func() {
			defer close(watchDone)
			err := config.Watch(watchCtx, path, logger, func(next *config.Config) {
				if err := session.Apply(next); err != nil {
					logger.Warn("config reload not applied", zap.Error(err))
				}
			})
			if err != nil {
				logger.Warn("config watch disabled", zap.Error(err))
			}
		}()

		err = session.Chat.Run(ctx)
		cancelWatch()
		<-watchDone
		if err != nil {
			logger.Error("chat ended", zap.Error(err))
			logger.Sync()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Send a single request and print the result",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := prepare(resolveConfigPath())
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		exitCode, err := cli.Ask(ctx, cfg, strings.Join(args, " "), cmd.OutOrStdout(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if exitCode != 0 {
			logger.Sync()
			os.Exit(exitCode)
		}
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted demonstration of the task and streaming agents",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := prepare(resolveConfigPath())
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := cli.Demo(ctx, cfg, cmd.OutOrStdout(), logger); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.OutOrStdout(), "\nDemo interrupted.")
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the setup wizard",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := resolveConfigPath()
		if _, err := onboarding.RunWizard(path); err != nil {
			if errors.Is(err, onboarding.ErrCancelled) {
				fmt.Println("Setup cancelled.")
				return
			}
			log.Fatalf("Setup failed: %v", err)
		}
		fmt.Printf("Configuration saved to %s\n", path)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), resolveConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file if none exists",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := resolveConfigPath()
		if config.Exists(path) {
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists at %s\n", path)
			return
		}
		if err := config.EnsureConfigExists(path); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and terminal health",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode, err := cli.Doctor(cmd.OutOrStdout(), resolveConfigPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

// resolveConfigPath returns --config, or the default location.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	path, err := config.GetConfigFile()
	if err != nil {
		log.Fatalf("Failed to resolve config directory: %v", err)
	}
	return path
}

// prepare loads the configuration, applies command line overrides and
// builds the file logger.
func prepare(path string) (*config.Config, *zap.Logger) {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if agentName != "" {
		if _, ok := agent.Lookup(agentName); !ok {
			log.Fatalf("Unknown agent %q (available: %s)", agentName, strings.Join(agent.Names(), ", "))
		}
		cfg.Agent = agentName
	}
	if noBanner {
		cfg.Banner = false
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if verbose && cfg.Log.File == "" {
		if p, err := config.GetDefaultLogPath(); err == nil {
			cfg.Log.File = p
		}
	}

	logger, err := logging.New(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Verbose: verbose,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, logger
}

func init() {
	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&agentName, "agent", "a", "", "Agent to use ("+strings.Join(agent.Names(), ", ")+")")
	rootCmd.Flags().BoolVar(&noBanner, "no-banner", false, "Skip the welcome banner")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
