package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/k4tool/internal/k4"
	"github.com/muurk/k4tool/internal/listing"
	"github.com/muurk/k4tool/internal/logging"
	"github.com/muurk/k4tool/internal/manufacturer"
	"github.com/muurk/k4tool/internal/sysex"
	"github.com/muurk/k4tool/internal/ui"
)

// Decode command flags
var (
	identifyFormat string
	listFormat     string
	listOutput     string
)

func init() {
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)

	identifyCmd.Flags().StringVar(&identifyFormat, "format", "text", "Output format (text, json)")

	listCmd.Flags().StringVar(&listFormat, "format", "",
		"Output format (text, grid, html, json); default from config, else text")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Write the listing to a file instead of stdout")
}

// decoded is one message read from a file, with its K4 classification
type decoded struct {
	File           string
	Index          int // 1-based position in the file
	Message        *sysex.Message
	Header         *k4.Header
	Classification *k4.Classification
	Kawai          bool // false: Header and Classification are only a K4 reading of foreign bytes
	Err            error
}

// readFile reads a .syx file and decodes every message in it. Per-message
// errors are kept on the message; only I/O errors are returned.
func readFile(path string) ([]decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	logging.LogFileRead(path, len(data))

	chunks := sysex.Split(data)
	if len(chunks) == 0 {
		return []decoded{{File: path, Index: 1, Err: sysex.NewFramingError("file is empty", nil)}}, nil
	}

	results := make([]decoded, 0, len(chunks))
	for i, chunk := range chunks {
		results = append(results, decodeMessage(path, i+1, chunk))
	}
	return results, nil
}

func decodeMessage(path string, index int, chunk []byte) decoded {
	d := decoded{File: path, Index: index}

	msg, err := sysex.Parse(chunk)
	if err != nil {
		d.Err = err
		return d
	}
	d.Message = msg

	d.Kawai = !msg.Manufacturer.IsExtended() && msg.Manufacturer.Bytes()[0] == manufacturer.Kawai
	if !d.Kawai {
		logging.Debug("not a Kawai message",
			zap.String("file", path),
			zap.String("manufacturer", msg.Manufacturer.Hex()),
		)
		if len(msg.Payload) < k4.HeaderSize {
			return d
		}
	}

	h, err := k4.HeaderFromPayload(msg.Payload)
	if err != nil {
		d.Err = err
		return d
	}
	c := h.Identify()
	d.Header = &h
	d.Classification = &c
	return d
}

// manufacturerName resolves a name using the config file's additions
func manufacturerName(id manufacturer.ID) string {
	reg, err := cfg.ManufacturerRegistry()
	if err != nil {
		return id.Name()
	}
	return reg.Name(id)
}

// identifyCmd reports what each message in one or more files is
var identifyCmd = &cobra.Command{
	Use:   "identify FILE...",
	Short: "Identify the SysEx messages in .syx files",
	Long: `Identify each System Exclusive message in one or more .syx files.

For every message the manufacturer and payload size are shown. Kawai
messages are further classified as one-patch or block dumps, with the
patch kind, internal/external location and patch number.

Messages from other manufacturers are reported as a warning. When their
payload is long enough, the first six bytes are still read as a K4 header
and shown as "K4 reading"; that reading is not an identification.`,
	Example: `  # Identify a single patch dump
  k4tool identify single.syx

  # Identify several files, JSON output for scripting
  k4tool identify --format json *.syx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdentify,
}

// identifyRecord is the JSON form of one identified message
type identifyRecord struct {
	File           string             `json:"file"`
	Index          int                `json:"index"`
	Manufacturer   *manufacturerJSON  `json:"manufacturer,omitempty"`
	PayloadSize    int                `json:"payload_size"`
	Function       string             `json:"function,omitempty"`
	Channel        int                `json:"channel,omitempty"`
	Classification *k4.Classification `json:"classification,omitempty"`
	Kawai          bool               `json:"kawai"`
	Error          string             `json:"error,omitempty"`
}

type manufacturerJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func runIdentify(cmd *cobra.Command, args []string) error {
	if identifyFormat != "text" && identifyFormat != "json" {
		return fmt.Errorf("unknown format %q (supported: text, json)", identifyFormat)
	}

	var all []decoded
	for _, path := range args {
		results, err := readFile(path)
		if err != nil {
			return err
		}
		all = append(all, results...)
	}

	if identifyFormat == "json" {
		if err := writeIdentifyJSON(cmd.OutOrStdout(), all); err != nil {
			return err
		}
	} else {
		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("IDENTIFY", cmd.CommandPath(),
			ui.Detail{Key: "Files", Value: fmt.Sprintf("%d", len(args))},
			ui.Detail{Key: "Messages", Value: fmt.Sprintf("%d", len(all))},
		)
		printIdentify(p, all)
	}

	failed := 0
	for _, d := range all {
		if d.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d message(s) could not be decoded", failed, len(all))
	}
	return nil
}

func messageTitle(d decoded, total int) string {
	title := filepath.Base(d.File)
	if total > 1 {
		title = fmt.Sprintf("%s, message %d", title, d.Index)
	}
	return title
}

func printIdentify(p *ui.Printer, all []decoded) {
	for i, d := range all {
		title := messageTitle(d, len(all))

		if d.Err != nil {
			p.PrintError(title+": "+sysex.GetShortErrorMessage(d.Err), d.Err, sysex.GetTroubleshootingHints(d.Err))
			continue
		}

		if len(all) > 1 && !p.Styled() {
			if i > 0 {
				p.Newline()
			}
			p.Println(title)
		}

		details := []ui.Detail{
			{Key: "Manufacturer", Value: fmt.Sprintf("%s (%s)", manufacturerName(d.Message.Manufacturer), d.Message.Manufacturer.Hex())},
			{Key: "Payload", Value: fmt.Sprintf("%d bytes", len(d.Message.Payload))},
		}

		if !d.Kawai {
			details = append(details, ui.Detail{Key: "Identification", Value: "not a Kawai message"})
			if d.Classification != nil {
				details = append(details, ui.Detail{Key: "K4 reading", Value: d.Classification.String()})
			}
			p.PrintWarning(title, details...)
			continue
		}

		details = append(details,
			ui.Detail{Key: "Function", Value: d.Header.Function.String()},
			ui.Detail{Key: "Channel", Value: fmt.Sprintf("%d", int(d.Header.Channel)+1)},
			ui.Detail{Key: "Identification", Value: d.Classification.String()},
		)
		p.PrintSuccess(title, details...)
	}
}

func writeIdentifyJSON(w io.Writer, all []decoded) error {
	records := make([]identifyRecord, 0, len(all))
	for _, d := range all {
		r := identifyRecord{File: d.File, Index: d.Index}
		if d.Message != nil {
			r.Manufacturer = &manufacturerJSON{
				ID:   d.Message.Manufacturer.Hex(),
				Name: manufacturerName(d.Message.Manufacturer),
			}
			r.PayloadSize = len(d.Message.Payload)
		}
		if d.Header != nil {
			r.Function = d.Header.Function.String()
			r.Channel = int(d.Header.Channel) + 1
		}
		r.Classification = d.Classification
		r.Kawai = d.Kawai
		if d.Err != nil {
			r.Error = d.Err.Error()
		}
		records = append(records, r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// listCmd prints the patch names of a bank dump
var listCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "List the patch names in a bank dump",
	Long: `List the 64 single and 64 multi patch names of a K4 all-patch dump.

Formats:
  text  one "A-1: NAME" line per patch
  grid  16 rows with one column per bank, as on the K4's panel
  html  one table per category
  json  labels and names for scripting

Files holding a single patch are skipped with a note.`,
	Example: `  # Plain listing
  k4tool list bank.syx

  # HTML listing written to a file
  k4tool list bank.syx --format html -o bank.html`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	format := listFormat
	if format == "" {
		format = cfg.ListFormat
	}
	if !listing.ValidFormat(format) {
		return &listing.FormatError{Format: format}
	}

	results, err := readFile(args[0])
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if listOutput != "" {
		f, err := os.Create(listOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", listOutput, err)
		}
		defer f.Close()
		out = f
	}

	for _, d := range results {
		if d.Err != nil {
			return fmt.Errorf("%s: %w", messageTitle(d, len(results)), d.Err)
		}
		if !d.Kawai {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not a Kawai message\n", messageTitle(d, len(results)))
			continue
		}

		names, err := k4.ExtractPatchNames(d.Message.Payload, *d.Classification)
		if errors.Is(err, k4.ErrNotApplicable) {
			fmt.Fprintln(cmd.OutOrStdout(), "Not listing single patch")
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", messageTitle(d, len(results)), err)
		}

		if err := listing.New(filepath.Base(d.File), names).Write(out, format); err != nil {
			return err
		}
	}

	if listOutput != "" {
		logging.Info("listing written", zap.String("path", listOutput), zap.String("format", format))
	}
	return nil
}

// browseCmd opens the interactive patch browser
var browseCmd = &cobra.Command{
	Use:   "browse FILE",
	Short: "Browse the patches of a bank dump interactively",
	Long: `Open an interactive list of the single and multi patches of a K4
all-patch dump. Tab switches category, / filters by name, enter selects.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	results, err := readFile(args[0])
	if err != nil {
		return err
	}

	for _, d := range results {
		if d.Err != nil || !d.Kawai || !d.Classification.IsBlock() {
			continue
		}

		names, err := k4.ExtractPatchNames(d.Message.Payload, *d.Classification)
		if err != nil {
			return err
		}

		selection, err := ui.RunBrowser(listing.New(filepath.Base(d.File), names))
		if err != nil {
			return err
		}
		if selection != nil {
			fmt.Fprintln(cmd.OutOrStdout(), selection.String())
		}
		return nil
	}

	return fmt.Errorf("%s contains no bank dump", args[0])
}
