package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/k4tool/internal/k4"
	"github.com/muurk/k4tool/internal/ui"
)

func init() {
	rootCmd.AddCommand(layoutCmd)
}

// layoutCmd reports where each section sits in a block dump
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the section offsets of a K4 block dump",
	Long: `Show where the single, multi, drum and effect sections start within the
patch data of an all-patch dump. Offsets are relative to the first byte
after the 6-byte header.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		l := k4.BlockLayout()
		section := func(start, count, size int) string {
			return fmt.Sprintf("offset %d, %d x %d bytes", start, count, size)
		}

		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Block dump layout",
			ui.Detail{Key: "Singles", Value: section(l.SingleStart, k4.SingleCount, k4.SingleSize)},
			ui.Detail{Key: "Multis", Value: section(l.MultiStart, k4.MultiCount, k4.MultiSize)},
			ui.Detail{Key: "Drum", Value: section(l.DrumStart, 1, k4.DrumSize)},
			ui.Detail{Key: "Effects", Value: section(l.EffectStart, k4.EffectCount, k4.EffectSize)},
			ui.Detail{Key: "Total", Value: fmt.Sprintf("%d bytes", l.End)},
		)
	},
}
