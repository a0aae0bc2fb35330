package k4

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/muurk/k4tool/internal/logging"
	"github.com/muurk/k4tool/internal/sysex"
)

// Bank layout of an all-patch data dump
const (
	SingleCount = 64
	MultiCount  = 64
	EffectCount = 32

	SingleSize = 131
	MultiSize  = 77
	DrumSize   = 682
	EffectSize = 35

	NameLength     = 10
	PatchesPerBank = 16
	BankLetters    = "ABCD"

	// trailerSize is excluded from the end of a block payload
	trailerSize = 2
)

// ErrNotApplicable is returned when patch names are requested from a
// message that is not a block dump.
var ErrNotApplicable = errors.New("not a block dump: patch names not applicable")

// Layout holds the offsets of each section within the patch data of a
// block dump (payload with header and trailer removed).
type Layout struct {
	SingleStart int
	MultiStart  int
	DrumStart   int
	EffectStart int
	End         int
}

// BlockLayout returns the section offsets; sections follow each other with
// no gaps.
func BlockLayout() Layout {
	single := 0
	multi := single + SingleCount*SingleSize
	drum := multi + MultiCount*MultiSize
	effect := drum + DrumSize
	return Layout{
		SingleStart: single,
		MultiStart:  multi,
		DrumStart:   drum,
		EffectStart: effect,
		End:         effect + EffectCount*EffectSize,
	}
}

// BankNames holds the patch names of a block dump in on-wire order
type BankNames struct {
	Singles []string
	Multis  []string
}

// PatchLabel returns the panel label for a 0-based patch index within a
// 64-patch category: 0 is "A-1", 16 is "B-1", 63 is "D-16". Indexes outside
// 0-63 have no label.
func PatchLabel(index int) string {
	if index < 0 || index >= len(BankLetters)*PatchesPerBank {
		return ""
	}
	bank := BankLetters[index/PatchesPerBank]
	return string(bank) + "-" + strconv.Itoa(index%PatchesPerBank+1)
}

// ExtractPatchNames reads the single and multi patch names from a block dump
// payload. It returns ErrNotApplicable, without reading the payload, unless
// c is a block classification.
func ExtractPatchNames(payload []byte, c Classification) (*BankNames, error) {
	if !c.IsBlock() {
		return nil, ErrNotApplicable
	}

	layout := BlockLayout()
	if len(payload) < HeaderSize+trailerSize+layout.DrumStart {
		return nil, sysex.NewFramingError(
			fmt.Sprintf("block dump truncated: payload is %d bytes, patch names need %d",
				len(payload), HeaderSize+trailerSize+layout.DrumStart),
			nil)
	}

	data := payload[HeaderSize : len(payload)-trailerSize]

	singles, err := extractNames(data, layout.SingleStart, SingleCount, SingleSize)
	if err != nil {
		return nil, fmt.Errorf("single patches: %w", err)
	}

	multis, err := extractNames(data, layout.MultiStart, MultiCount, MultiSize)
	if err != nil {
		return nil, fmt.Errorf("multi patches: %w", err)
	}

	logging.Debug("patch names extracted",
		zap.Int("singles", len(singles)),
		zap.Int("multis", len(multis)),
		zap.Int("patch_data_length", len(data)),
	)

	return &BankNames{Singles: singles, Multis: multis}, nil
}

func extractNames(data []byte, start, count, size int) ([]string, error) {
	names := make([]string, 0, count)
	offset := start
	for i := 0; i < count; i++ {
		name, err := decodeName(data[offset:offset+NameLength], HeaderSize+offset)
		if err != nil {
			return nil, fmt.Errorf("patch %s: %w", PatchLabel(i), err)
		}
		names = append(names, name)
		offset += size
	}
	return names, nil
}

// decodeName decodes a 7-bit ASCII name. base is the payload offset of the
// first byte, for error reporting.
func decodeName(b []byte, base int) (string, error) {
	for i, c := range b {
		if c > 0x7F {
			return "", sysex.NewEncodingError(
				fmt.Sprintf("non-ASCII byte 0x%02X in patch name", c), base+i)
		}
	}
	return string(b), nil
}
