package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/k4tool/internal/k4"
	"github.com/muurk/k4tool/internal/logging"
)

// Builder command flags
var (
	buildOutput       string
	requestChannel    int
	requestSubstatus1 int
	requestSubstatus2 int
	waveNumber        int
	waveNamed         bool
)

func init() {
	rootCmd.AddCommand(paramCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(waveCmd)

	paramCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write the message to a .syx file")

	requestCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write the message to a .syx file")
	requestCmd.Flags().IntVarP(&requestChannel, "channel", "c", 1, "MIDI channel (1-16)")
	requestCmd.Flags().IntVar(&requestSubstatus1, "substatus1", 0, "Substatus 1: 0 = internal, 2 = external (0-127)")
	requestCmd.Flags().IntVar(&requestSubstatus2, "substatus2", 0, "Substatus 2: patch number for one-patch requests (0-127)")

	waveCmd.Flags().IntVarP(&waveNumber, "number", "n", 0, "Show only this wave (1-256)")
	waveCmd.Flags().BoolVar(&waveNamed, "named", false, "Show only waves that have a configured name")
}

// emit prints a built message as hex, or writes it to --output
func emit(cmd *cobra.Command, msg []byte) error {
	if buildOutput == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "% X\n", msg)
		return nil
	}

	if err := os.WriteFile(buildOutput, msg, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", buildOutput, err)
	}
	logging.Info("message written", zap.String("path", buildOutput), zap.Int("size", len(msg)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(msg), buildOutput)
	return nil
}

func parseInts(names []string, args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: must be a number", names[i], arg)
		}
		values[i] = v
	}
	return values, nil
}

// paramCmd builds a parameter-change message
var paramCmd = &cobra.Command{
	Use:   "param TYPE CHANNEL PARAMETER TARGET VALUE",
	Short: "Build a parameter-change message",
	Long: `Build a K4 parameter-change (function 10H) message.

TYPE is single, drum or effect. Parameter and target ranges:
  single  parameter 0-69   target (source) 0-3
  drum    parameter 70-81  target (key) 0-60
  effect  parameter 82-88  target (submix) 0-7

CHANNEL is 1-16 and VALUE is 0-127. The message is printed as hex unless
--output is given.`,
	Example: `  # Single volume (parameter 0) to 100 on channel 1
  k4tool param single 1 0 0 100

  # Write the message to a file
  k4tool param effect 1 82 0 5 -o effect.syx`,
	Args: cobra.ExactArgs(5),
	RunE: runParam,
}

func runParam(cmd *cobra.Command, args []string) error {
	patchType, err := k4.ParsePatchType(args[0])
	if err != nil {
		return err
	}

	v, err := parseInts([]string{"channel", "parameter", "target", "value"}, args[1:])
	if err != nil {
		return err
	}

	msg, err := k4.BuildParameterSend(v[0], patchType, v[1], v[2], v[3])
	if err != nil {
		return err
	}
	return emit(cmd, msg)
}

// requestFunctions maps request kinds to function codes
var requestFunctions = map[string]k4.Function{
	"one":   k4.OnePatchDumpRequest,
	"block": k4.BlockPatchDumpRequest,
	"all":   k4.AllPatchDumpRequest,
}

// requestCmd builds a dump request
var requestCmd = &cobra.Command{
	Use:       "request {one|block|all}",
	Short:     "Build a patch dump request",
	ValidArgs: []string{"one", "block", "all"},
	Long: `Build a K4 dump request message asking the synthesizer to send one
patch, a block or all patches.`,
	Example: `  # Request all internal patches on channel 1
  k4tool request all

  # Request internal multi 65 on channel 3
  k4tool request one --channel 3 --substatus2 65`,
	Args: cobra.ExactArgs(1),
	RunE: runRequest,
}

func runRequest(cmd *cobra.Command, args []string) error {
	fn, ok := requestFunctions[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown request kind %q (must be one, block or all)", args[0])
	}

	for name, v := range map[string]int{"substatus1": requestSubstatus1, "substatus2": requestSubstatus2} {
		if v < 0 || v > 127 {
			return fmt.Errorf("--%s %d out of range, must be 0...127", name, v)
		}
	}

	msg, err := k4.BuildDumpRequest(requestChannel, fn, byte(requestSubstatus1), byte(requestSubstatus2))
	if err != nil {
		return err
	}
	return emit(cmd, msg)
}

// waveCmd shows wave names from the config file
var waveCmd = &cobra.Command{
	Use:   "wave",
	Short: "Show the names of the K4's PCM waves",
	Long: `Show the K4's 256 PCM waves by number.

Wave names are read from the waves: section of the config file; waves
without a name are shown as *unknown*. Use 'k4tool config set-wave' to
name them.`,
	Args: cobra.NoArgs,
	RunE: runWave,
}

func runWave(cmd *cobra.Command, args []string) error {
	table, err := cfg.WaveTable()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("number") {
		name, err := table.Name(waveNumber)
		if err != nil {
			return fmt.Errorf("bad wave number: %d", waveNumber)
		}
		fmt.Fprintf(out, "%3d %s\n", waveNumber, name)
		return nil
	}

	numbers := table.Named()
	if !waveNamed {
		numbers = make([]int, k4.WaveCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
	} else if len(numbers) == 0 {
		fmt.Fprintln(out, "No wave names configured. Add them under waves: in the config file ('k4tool config path').")
		return nil
	}

	for _, n := range numbers {
		name, _ := table.Name(n)
		fmt.Fprintf(out, "%3d %s\n", n, name)
	}
	return nil
}
