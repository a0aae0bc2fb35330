package k4

import (
	"fmt"
	"strings"

	"github.com/muurk/k4tool/internal/manufacturer"
	"github.com/muurk/k4tool/internal/sysex"
)

// Message constructors for the two message kinds a librarian sends to the
// K4: parameter changes and dump requests.

// PatchType selects the parameter block of a parameter-send message
type PatchType int

const (
	PatchTypeSingle PatchType = iota + 1
	PatchTypeDrum
	PatchTypeEffect
)

// String returns the lowercase name used on the command line
func (p PatchType) String() string {
	switch p {
	case PatchTypeSingle:
		return "single"
	case PatchTypeDrum:
		return "drum"
	case PatchTypeEffect:
		return "effect"
	default:
		return fmt.Sprintf("PatchType(%d)", int(p))
	}
}

// ParsePatchType parses "single", "drum" or "effect"
func ParsePatchType(s string) (PatchType, error) {
	switch strings.ToLower(s) {
	case "single":
		return PatchTypeSingle, nil
	case "drum":
		return PatchTypeDrum, nil
	case "effect":
		return PatchTypeEffect, nil
	default:
		return 0, &ValidationError{Field: "patch type", Message: fmt.Sprintf("bad patch type: %s", s)}
	}
}

// valueRange is an inclusive range
type valueRange struct{ min, max int }

// Parameter and target ranges per patch type
var (
	parameterRanges = map[PatchType]valueRange{
		PatchTypeSingle: {0, 69},
		PatchTypeDrum:   {70, 81},
		PatchTypeEffect: {82, 88},
	}
	targetRanges = map[PatchType]valueRange{
		PatchTypeSingle: {0, 3},  // source
		PatchTypeDrum:   {0, 60}, // key
		PatchTypeEffect: {0, 7},  // submix / output channel
	}
)

// ValidationError reports an out-of-range builder argument
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

func checkRange(field string, v int, r valueRange) error {
	if v < r.min || v > r.max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s %d out of range, must be %d...%d", field, v, r.min, r.max),
		}
	}
	return nil
}

func channelByte(channel int) (byte, error) {
	if err := checkRange("MIDI channel", channel, valueRange{1, 16}); err != nil {
		return 0, err
	}
	return byte(channel - 1), nil
}

// BuildParameterSend constructs a parameter-change message.
//
// Message structure:
//
//	[0]  0xF0        initiator
//	[1]  0x40        Kawai
//	[2]  channel     0-15 (argument is 1-16)
//	[3]  0x10        ParameterSend
//	[4]  0x00        synth group
//	[5]  0x04        K4 machine ID
//	[6]  parameter
//	[7]  target      source / key / submix
//	[8]  value       7-bit
//	[9]  0xF7        terminator
func BuildParameterSend(channel int, patchType PatchType, parameter, target, value int) ([]byte, error) {
	ch, err := channelByte(channel)
	if err != nil {
		return nil, err
	}

	paramRange, ok := parameterRanges[patchType]
	if !ok {
		return nil, &ValidationError{Field: "patch type", Message: fmt.Sprintf("bad patch type: %s", patchType)}
	}
	if err := checkRange("parameter", parameter, paramRange); err != nil {
		return nil, err
	}
	if err := checkRange("parameter target", target, targetRanges[patchType]); err != nil {
		return nil, err
	}
	if err := checkRange("parameter value", value, valueRange{0, 127}); err != nil {
		return nil, err
	}

	return []byte{
		sysex.Initiator,
		manufacturer.Kawai,
		ch,
		byte(ParameterSend),
		SynthGroup,
		MachineID,
		byte(parameter),
		byte(target),
		byte(value),
		sysex.Terminator,
	}, nil
}

// BuildDumpRequest constructs a one, block or all patch dump request.
// substatus1 selects INT/EXT and category, substatus2 the patch number; both
// are 7-bit.
func BuildDumpRequest(channel int, function Function, substatus1, substatus2 byte) ([]byte, error) {
	ch, err := channelByte(channel)
	if err != nil {
		return nil, err
	}

	switch function {
	case OnePatchDumpRequest, BlockPatchDumpRequest, AllPatchDumpRequest:
	default:
		return nil, &ValidationError{
			Field:   "function",
			Message: fmt.Sprintf("%s is not a dump request", function),
		}
	}

	if err := checkRange("substatus 1", int(substatus1), valueRange{0, 127}); err != nil {
		return nil, err
	}
	if err := checkRange("substatus 2", int(substatus2), valueRange{0, 127}); err != nil {
		return nil, err
	}

	return []byte{
		sysex.Initiator,
		manufacturer.Kawai,
		ch,
		byte(function),
		SynthGroup,
		MachineID,
		substatus1,
		substatus2,
		sysex.Terminator,
	}, nil
}
