// Package cmd implements the containr CLI.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"containr/logging"
	"containr/runtimedir"
)

// Global flags.
var (
	globalRoot      string
	globalLog       string
	globalLogFormat string
	globalLogLevel  string
	globalDebug     bool
)

// rootCmd is the base command for containr.
var rootCmd = &cobra.Command{
	Use:   "containr",
	Short: "OCI container runtime",
	Long: `containr is an OCI-compliant container runtime focused on the
sandbox lifecycle: create, start, state, kill, and delete.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		if globalRoot != "" {
			runtimedir.SetRoot(globalRoot)
			logging.Info("using overridden runtime root", "root", globalRoot)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalRoot, "root", "", "runtime state directory (default: $XDG_RUNTIME_DIR/containr)")
	rootCmd.PersistentFlags().StringVar(&globalLog, "log", "", "set the log file path")
	rootCmd.PersistentFlags().StringVar(&globalLogFormat, "log-format", "text", "set the format for log output (text or json)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "info", "set the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "enable debug logging (equivalent to --log-level debug)")

	// Accepted for compatibility with callers that always pass it; ignored,
	// since cgroup resource accounting is out of scope.
	rootCmd.PersistentFlags().Bool("systemd-cgroup", false, "enable systemd cgroup support (compatibility flag, ignored)")
}

func setupLogging() {
	logOutput := os.Stderr
	if globalLog != "" {
		if f, err := os.OpenFile(globalLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			logOutput = f
		}
	}

	levelName := globalLogLevel
	if globalDebug {
		levelName = "debug"
	}
	logLevel := logging.ParseLevel(levelName)

	logger := logging.NewLogger(logging.Config{
		Level:  logLevel,
		Format: globalLogFormat,
		Output: logOutput,
	})
	logging.SetDefault(logger)
	logging.Debug("logging configured", "level", levelName, "format", globalLogFormat)
}
