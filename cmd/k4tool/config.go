package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/k4tool/internal/config"
	"github.com/muurk/k4tool/internal/ui"
)

var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetWaveCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file without asking")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the k4tool config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with example entries",
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	overwrite := configForce
	if _, err := os.Stat(path); err == nil && !overwrite {
		if !ui.IsTerminal(os.Stdin) {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if !ui.ConfirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), path) {
			return nil
		}
		overwrite = true
	}

	path, err = config.CreateDefaultConfig(overwrite)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
	return nil
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		data, err := cfg.Marshal(path)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configSetWaveCmd = &cobra.Command{
	Use:   "set-wave NUMBER NAME",
	Short: "Name a PCM wave in the config file",
	Example: `  # Name wave 12
  k4tool config set-wave 12 "SAW 1"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid wave number %q: must be a number", args[0])
		}
		name := strings.Join(args[1:], " ")
		if err := cfg.SetWave(number, name); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wave %d is now %q\n", number, name)
		return nil
	},
}
