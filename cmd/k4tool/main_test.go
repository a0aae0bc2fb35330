package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/muurk/k4tool/internal/k4"
)

// resetFlags restores every flag to its default so commands can be
// executed more than once in a test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs k4tool with a private config file and returns its output
func execute(t *testing.T, configFile string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configFile}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// singleDump is a one-patch dump of internal single A-6
func singleDump() []byte {
	msg := []byte{0xF0, 0x40, 0x00, 0x20, 0x00, 0x04, 0x00, 0x05}
	patch := make([]byte, k4.SingleSize)
	copy(patch, "Init Voice")
	msg = append(msg, patch...)
	msg = append(msg, 0x00) // checksum
	return append(msg, 0xF7)
}

// bankDump is an all-patch dump with names "SGL-00".."SGL-63" and
// "MLT-00".."MLT-63"
func bankDump() []byte {
	layout := k4.BlockLayout()
	data := make([]byte, layout.End)
	for i := 0; i < k4.SingleCount; i++ {
		copy(data[layout.SingleStart+i*k4.SingleSize:], fmt.Sprintf("SGL-%02d    ", i))
	}
	for i := 0; i < k4.MultiCount; i++ {
		copy(data[layout.MultiStart+i*k4.MultiSize:], fmt.Sprintf("MLT-%02d    ", i))
	}

	msg := []byte{0xF0, 0x40, 0x00, 0x22, 0x00, 0x04, 0x00, 0x00}
	msg = append(msg, data...)
	msg = append(msg, 0x00, 0x00)
	return append(msg, 0xF7)
}

func TestIdentifySinglePatch(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "single.syx", singleDump())

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "identify", file)
	if err != nil {
		t.Fatalf("identify error = %v\n%s", err, out)
	}

	for _, want := range []string{
		"Manufacturer: Kawai Musical Instruments MFG. CO. Ltd (40H)",
		fmt.Sprintf("Payload: %d bytes", 6+k4.SingleSize+1),
		"Function: OnePatchDataDump",
		"Channel: 1",
		"Identification: One / Single / INT 5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestIdentifyMultipleMessages(t *testing.T) {
	dir := t.TempDir()
	data := append(singleDump(), bankDump()...)
	file := writeFile(t, dir, "both.syx", data)

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "identify", file)
	if err != nil {
		t.Fatalf("identify error = %v", err)
	}
	if !strings.Contains(out, "both.syx, message 1") || !strings.Contains(out, "both.syx, message 2") {
		t.Errorf("output should title each message:\n%s", out)
	}
	if !strings.Contains(out, "Identification: Block / All / INT") {
		t.Errorf("output missing block identification:\n%s", out)
	}
}

func TestIdentifyBadFraming(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "junk.syx", []byte{0x00, 0x01, 0x02, 0x03})

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "identify", file)
	if err == nil {
		t.Fatal("identify should fail on a non-SysEx file")
	}
	if !strings.Contains(out, "Not a valid MIDI System Exclusive message") {
		t.Errorf("output missing short error message:\n%s", out)
	}
}

func TestIdentifyOtherManufacturer(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "yamaha.syx", []byte{0xF0, 0x43, 0x00, 0x01, 0xF7})

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "identify", file)
	if err != nil {
		t.Fatalf("identify error = %v", err)
	}
	if !strings.Contains(out, "Yamaha Corporation (43H)") {
		t.Errorf("output missing manufacturer:\n%s", out)
	}
	if !strings.Contains(out, "not a Kawai message") {
		t.Errorf("output should note non-Kawai message:\n%s", out)
	}
}

func TestIdentifyOtherManufacturerK4Reading(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0xF0, 0x43, 0x00, 0x20, 0x00, 0x04, 0x00, 0x05, 0x00, 0xF7}
	file := writeFile(t, dir, "yamaha.syx", data)

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "identify", file)
	if err != nil {
		t.Fatalf("identify error = %v", err)
	}
	if !strings.Contains(out, "not a Kawai message") || !strings.Contains(out, "K4 reading: One / Single / INT 5") {
		t.Errorf("output should warn and show the K4 reading:\n%s", out)
	}

	out, err = execute(t, filepath.Join(dir, "config.yaml"), "list", file)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "not a Kawai message") {
		t.Errorf("list should skip non-Kawai messages:\n%s", out)
	}
}

func TestIdentifyTrailingByte(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "single.syx", append(singleDump(), '\n'))

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "identify", file)
	if err != nil {
		t.Fatalf("identify error = %v\n%s", err, out)
	}
	if strings.Contains(out, "message 2") {
		t.Errorf("trailing byte should not be a second message:\n%s", out)
	}
	if !strings.Contains(out, "Identification: One / Single / INT 5") {
		t.Errorf("output missing identification:\n%s", out)
	}

	bank := writeFile(t, dir, "bank.syx", append(bankDump(), '\r', '\n'))
	out, err = execute(t, filepath.Join(dir, "config.yaml"), "list", bank)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "D-16: MLT-63") {
		t.Errorf("list of bank with trailing bytes:\n%s", out)
	}
}

func TestIdentifyConfiguredManufacturer(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yaml", []byte("version: 1\nmanufacturers:\n  \"00 20 33\": Access Music Electronics\n"))
	file := writeFile(t, dir, "virus.syx", []byte{0xF0, 0x00, 0x20, 0x33, 0x01, 0xF7})

	out, err := execute(t, configFile, "identify", file)
	if err != nil {
		t.Fatalf("identify error = %v", err)
	}
	if !strings.Contains(out, "Access Music Electronics (00H 20H 33H)") {
		t.Errorf("output missing configured manufacturer name:\n%s", out)
	}
}

func TestIdentifyJSON(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bank.syx", bankDump())

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "identify", "--format", "json", file)
	if err != nil {
		t.Fatalf("identify error = %v", err)
	}

	var records []identifyRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if !strings.Contains(out, `"cardinality": "BLOCK"`) || !strings.Contains(out, `"kind": "ALL"`) {
		t.Errorf("JSON missing classification:\n%s", out)
	}
	if c := records[0].Classification; c == nil || !c.IsBlock() || c.Kind != k4.KindAll {
		t.Errorf("Classification = %+v", c)
	}
	if !records[0].Kawai {
		t.Error("Kawai = false, want true")
	}
	if records[0].Manufacturer == nil || records[0].Manufacturer.ID != "40H" {
		t.Errorf("Manufacturer = %+v", records[0].Manufacturer)
	}
}

func TestListText(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bank.syx", bankDump())

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "list", file)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	for _, want := range []string{"SINGLE PATCHES", "A-1: SGL-00", "D-16: SGL-63", "MULTI PATCHES", "B-1: MLT-16"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestListSinglePatch(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "single.syx", singleDump())

	out, err := execute(t, filepath.Join(dir, "config.yaml"), "list", file)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if strings.TrimSpace(out) != "Not listing single patch" {
		t.Errorf("output = %q, want %q", out, "Not listing single patch")
	}
}

func TestListFormatFromConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yaml", []byte("version: 1\nlist_format: grid\n"))
	file := writeFile(t, dir, "bank.syx", bankDump())

	out, err := execute(t, configFile, "list", file)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.HasPrefix(out, "SINGLE patches:") {
		t.Errorf("config list_format should select the grid:\n%s", out)
	}
}

func TestListHTMLToFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bank.syx", bankDump())
	output := filepath.Join(dir, "bank.html")

	if _, err := execute(t, filepath.Join(dir, "config.yaml"), "list", file, "--format", "html", "-o", output); err != nil {
		t.Fatalf("list error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "<h1>bank.syx</h1>") {
		t.Errorf("HTML listing = %q", data[:40])
	}
}

func TestListUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bank.syx", bankDump())

	if _, err := execute(t, filepath.Join(dir, "config.yaml"), "list", file, "--format", "pdf"); err == nil {
		t.Error("list should reject an unknown format")
	}
}

func TestParam(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")

	out, err := execute(t, configFile, "param", "single", "1", "0", "0", "100")
	if err != nil {
		t.Fatalf("param error = %v", err)
	}
	if strings.TrimSpace(out) != "F0 40 00 10 00 04 00 00 64 F7" {
		t.Errorf("output = %q", out)
	}

	output := filepath.Join(dir, "param.syx")
	if _, err := execute(t, configFile, "param", "drum", "10", "70", "60", "1", "-o", output); err != nil {
		t.Fatalf("param error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := []byte{0xF0, 0x40, 0x09, 0x10, 0x00, 0x04, 70, 60, 1, 0xF7}
	if !bytes.Equal(data, want) {
		t.Errorf("file = % X, want % X", data, want)
	}

	if _, err := execute(t, configFile, "param", "single", "1", "70", "0", "0"); err == nil {
		t.Error("param should reject an out-of-range parameter")
	}
	if _, err := execute(t, configFile, "param", "single", "one", "0", "0", "0"); err == nil {
		t.Error("param should reject a non-numeric channel")
	}
}

func TestRequest(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, configFile, "request", "all")
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	if strings.TrimSpace(out) != "F0 40 00 02 00 04 00 00 F7" {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, configFile, "request", "one", "--channel", "3", "--substatus2", "65")
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	if strings.TrimSpace(out) != "F0 40 02 00 00 04 00 41 F7" {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, configFile, "request", "some"); err == nil {
		t.Error("request should reject an unknown kind")
	}
	if _, err := execute(t, configFile, "request", "one", "--substatus1", "200"); err == nil {
		t.Error("request should reject an 8-bit substatus")
	}
}

func TestWave(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yaml", []byte("version: 1\nwaves:\n  1: SIN 1ST\n  12: SAW 1\n"))

	out, err := execute(t, configFile, "wave")
	if err != nil {
		t.Fatalf("wave error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != k4.WaveCount {
		t.Fatalf("wave listed %d waves, want %d", len(lines), k4.WaveCount)
	}
	for i, want := range map[int]string{0: "  1 SIN 1ST", 1: "  2 *unknown*", 11: " 12 SAW 1", 255: "256 *unknown*"} {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want)
		}
	}

	out, err = execute(t, configFile, "wave", "--named")
	if err != nil {
		t.Fatalf("wave error = %v", err)
	}
	if out != "  1 SIN 1ST\n 12 SAW 1\n" {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, configFile, "wave", "-n", "2")
	if err != nil {
		t.Fatalf("wave error = %v", err)
	}
	if out != "  2 *unknown*\n" {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, configFile, "wave", "-n", "300"); err == nil {
		t.Error("wave should reject number 300")
	}
}

func TestConfigCommands(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, configFile, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(out) != configFile {
		t.Errorf("config path = %q, want %q", out, configFile)
	}

	if _, err := execute(t, configFile, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := os.Stat(configFile); err != nil {
		t.Fatalf("config init did not write the file: %v", err)
	}

	if _, err := execute(t, configFile, "config", "init"); err == nil {
		t.Error("config init should not overwrite without --force")
	}
	if _, err := execute(t, configFile, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	out, err = execute(t, configFile, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "version: 1") {
		t.Errorf("config show = %q", out)
	}
}

func TestConfigSetWave(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := execute(t, configFile, "config", "set-wave", "12", "SAW", "1"); err != nil {
		t.Fatalf("config set-wave error = %v", err)
	}

	out, err := execute(t, configFile, "wave", "-n", "12")
	if err != nil {
		t.Fatalf("wave error = %v", err)
	}
	if out != " 12 SAW 1\n" {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, configFile, "config", "set-wave", "0", "NONE"); err == nil {
		t.Error("config set-wave should reject wave 0")
	}
}

func TestBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yaml", []byte("version: 9\n"))

	if _, err := execute(t, configFile, "wave"); err == nil {
		t.Error("commands should fail on a broken config")
	}
	if _, err := execute(t, configFile, "config", "path"); err != nil {
		t.Errorf("config path should work with a broken config: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "config.yaml"), "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "k4tool ") {
		t.Errorf("version output = %q", out)
	}
}

func TestLayout(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "config.yaml"), "layout")
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}

	for _, want := range []string{
		"Singles: offset 0, 64 x 131 bytes",
		"Multis: offset 8384, 64 x 77 bytes",
		"Drum: offset 13312, 1 x 682 bytes",
		"Effects: offset 13994, 32 x 35 bytes",
		"Total: 15114 bytes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
