package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/provide-io/rvglsave/internal/config"
	"github.com/provide-io/rvglsave/pkg/logging"
)

const version = "0.1.0"

var (
	configPath string
	logLevel   string
	rootCmd    *cobra.Command

	cfg    *config.Config
	logger hclog.Logger = hclog.NewNullLogger()
)

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "rvglsave",
		Short:             "Inspect and edit RVGL save-progress archives",
		Long:              `Inspect and edit RVGL save-progress archives (.level and .stunt records in a zip)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to an ini config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newInspectCmd(),
		newVerifyCmd(),
		newEditCmd(),
		newPresetCmd(),
		newDumpCmd(),
		newHexCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger; flags override both
// the config file and the environment.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		// No config to take the level from; fall back to the flag, then the environment
		level := logLevel
		if level == "" {
			level = logging.GetLogLevel()
		}
		logger = logging.NewLogger("rvglsave", level, cmd.ErrOrStderr())
		logger.Error("Failed to load configuration", "config", configPath, "error", err)
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	cfg = loaded
	if os.Getenv("NO_COLOR") != "" {
		pterm.DisableColor()
	}
	logger = logging.NewLogger("rvglsave", cfg.LogLevel, cmd.ErrOrStderr())
	logger.Debug("Loaded configuration", "config", configPath, "compression", cfg.Compression, "backup", cfg.Backup)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rvglsave %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", getBuildTimestamp())
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
