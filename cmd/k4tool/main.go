// K4tool decodes and builds MIDI System Exclusive messages for the Kawai K4
// synthesizer.
//
// It identifies dump files, lists and browses the patch names of bank
// dumps, and constructs parameter-change and dump-request messages.
// It works on .syx files only and never talks to MIDI hardware.
//
// Usage:
//
//	k4tool [command] [flags]
//
// See 'k4tool --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/k4tool/internal/config"
	"github.com/muurk/k4tool/internal/logging"
	"github.com/muurk/k4tool/internal/version"
)

// skipConfigAnnotation marks commands that must run even when the config
// file is broken
const skipConfigAnnotation = "k4tool/skip-config"

// Global flags
var (
	logLevel   string
	configPath string
)

// cfg is loaded before any command runs
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "k4tool",
	Short: "Kawai K4 System Exclusive utility",
	Long: `A utility for Kawai K4 MIDI System Exclusive (.syx) files.

Identifies patch and bank dumps, lists the single and multi patch names
of a bank, and builds parameter-change and dump-request messages.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default $XDG_CONFIG_HOME/k4tool/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// setup loads the config and initializes logging. The log level comes from
// --log-level, then the environment, then the config file.
func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		config.SetConfigPath(configPath)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		if cmd.Annotations[skipConfigAnnotation] == "" {
			return err
		}
		cfg = config.NewConfig()
	}

	level := logLevel
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}
	if level == "" {
		level = cfg.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return err
	}

	logging.Debug("k4tool starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", version.Full()),
		zap.String("log_level", level),
	)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Detailed("k4tool"))
	},
}
