package k4

import (
	"fmt"
	"strings"

	"github.com/muurk/k4tool/internal/sysex"
)

// HeaderSize is the length of the K4 header at the start of every payload:
// channel, function, group, machine ID, substatus 1, substatus 2.
const HeaderSize = 6

// Header field values sent by the K4
const (
	SynthGroup = 0x00
	MachineID  = 0x04
)

// Function is the K4 SysEx function code (header byte 1)
type Function byte

// Function codes (K4 MIDI implementation, section 5)
const (
	OnePatchDumpRequest   Function = 0x00
	BlockPatchDumpRequest Function = 0x01
	AllPatchDumpRequest   Function = 0x02
	ParameterSend         Function = 0x10
	OnePatchDataDump      Function = 0x20
	BlockPatchDataDump    Function = 0x21
	AllPatchDataDump      Function = 0x22
	EditBufferDump        Function = 0x23
	ProgramChange         Function = 0x30
	WriteComplete         Function = 0x40
	WriteError            Function = 0x41
	WriteErrorProtect     Function = 0x42
	WriteErrorNoCard      Function = 0x43
)

// String returns a human-readable name for a function code
func (f Function) String() string {
	switch f {
	case OnePatchDumpRequest:
		return "OnePatchDumpRequest"
	case BlockPatchDumpRequest:
		return "BlockPatchDumpRequest"
	case AllPatchDumpRequest:
		return "AllPatchDumpRequest"
	case ParameterSend:
		return "ParameterSend"
	case OnePatchDataDump:
		return "OnePatchDataDump"
	case BlockPatchDataDump:
		return "BlockPatchDataDump"
	case AllPatchDataDump:
		return "AllPatchDataDump"
	case EditBufferDump:
		return "EditBufferDump"
	case ProgramChange:
		return "ProgramChange"
	case WriteComplete:
		return "WriteComplete"
	case WriteError:
		return "WriteError"
	case WriteErrorProtect:
		return "WriteErrorProtect"
	case WriteErrorNoCard:
		return "WriteErrorNoCard"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", byte(f))
	}
}

// Locality says whether patches live in internal memory or on a card
type Locality int

const (
	LocalityInternal Locality = iota + 1
	LocalityExternal
)

// String returns the short panel form: INT or EXT
func (l Locality) String() string {
	switch l {
	case LocalityInternal:
		return "INT"
	case LocalityExternal:
		return "EXT"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Locality) MarshalText() ([]byte, error) {
	switch l {
	case LocalityInternal:
		return []byte("INTERNAL"), nil
	case LocalityExternal:
		return []byte("EXTERNAL"), nil
	default:
		return nil, fmt.Errorf("invalid locality %d", int(l))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Locality) UnmarshalText(text []byte) error {
	for _, v := range []Locality{LocalityInternal, LocalityExternal} {
		if name, _ := v.MarshalText(); strings.EqualFold(string(name), string(text)) {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("invalid locality %q", text)
}

// Cardinality says whether a dump carries one patch or a whole block
type Cardinality int

const (
	CardinalityOne Cardinality = iota + 1
	CardinalityBlock
)

// String returns "One" or "Block"
func (c Cardinality) String() string {
	switch c {
	case CardinalityOne:
		return "One"
	case CardinalityBlock:
		return "Block"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Cardinality) MarshalText() ([]byte, error) {
	switch c {
	case CardinalityOne:
		return []byte("ONE"), nil
	case CardinalityBlock:
		return []byte("BLOCK"), nil
	default:
		return nil, fmt.Errorf("invalid cardinality %d", int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Cardinality) UnmarshalText(text []byte) error {
	for _, v := range []Cardinality{CardinalityOne, CardinalityBlock} {
		if name, _ := v.MarshalText(); strings.EqualFold(string(name), string(text)) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("invalid cardinality %q", text)
}

// Kind is the patch category a message refers to
type Kind int

const (
	KindSingle Kind = iota + 1
	KindMulti
	KindDrum
	KindEffect
	KindAll
)

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "Single"
	case KindMulti:
		return "Multi"
	case KindDrum:
		return "Drum"
	case KindEffect:
		return "Effect"
	case KindAll:
		return "All"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindSingle:
		return []byte("SINGLE"), nil
	case KindMulti:
		return []byte("MULTI"), nil
	case KindDrum:
		return []byte("DRUM"), nil
	case KindEffect:
		return []byte("EFFECT"), nil
	case KindAll:
		return []byte("ALL"), nil
	default:
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	for _, v := range []Kind{KindSingle, KindMulti, KindDrum, KindEffect, KindAll} {
		if name, _ := v.MarshalText(); strings.EqualFold(string(name), string(text)) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("invalid kind %q", text)
}

// Header is the fixed K4 header at the start of a SysEx payload
type Header struct {
	Channel    byte     // [0] MIDI channel 0-15
	Function   Function // [1] function code
	Group      byte     // [2] 0x00 for synthesizers
	Machine    byte     // [3] 0x04 for the K4
	Substatus1 byte     // [4] INT/EXT and patch category
	Substatus2 byte     // [5] patch number
}

// HeaderFromPayload reads the header from the first HeaderSize bytes of a
// payload returned by sysex.Parse.
func HeaderFromPayload(payload []byte) (Header, error) {
	if len(payload) < HeaderSize {
		return Header{}, sysex.NewFramingError(
			fmt.Sprintf("payload too short for K4 header: %d bytes (minimum %d)", len(payload), HeaderSize),
			nil)
	}

	return Header{
		Channel:    payload[0],
		Function:   Function(payload[1]),
		Group:      payload[2],
		Machine:    payload[3],
		Substatus1: payload[4],
		Substatus2: payload[5],
	}, nil
}

// Locality derives the storage location from substatus 1. ok is false when
// substatus 1 is outside 0-3.
func (h Header) Locality() (Locality, bool) {
	switch h.Substatus1 {
	case 0x00, 0x01:
		return LocalityInternal, true
	case 0x02, 0x03:
		return LocalityExternal, true
	default:
		return 0, false
	}
}

// Cardinality derives the dump cardinality from the function code alone.
// ok is false for anything but the three data dump functions. Identify makes
// its own determination and does not use this.
func (h Header) Cardinality() (Cardinality, bool) {
	switch h.Function {
	case OnePatchDataDump:
		return CardinalityOne, true
	case BlockPatchDataDump, AllPatchDataDump:
		return CardinalityBlock, true
	default:
		return 0, false
	}
}

// String returns a debug representation of the header
func (h Header) String() string {
	return fmt.Sprintf("Header{channel=%d, function=%s, group=0x%02X, machine=0x%02X, substatus1=0x%02X, substatus2=0x%02X}",
		h.Channel+1, h.Function, h.Group, h.Machine, h.Substatus1, h.Substatus2)
}
