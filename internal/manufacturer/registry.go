package manufacturer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Manufacturer ID constants
const (
	// Extended marks a three-byte identifier: 0x00 followed by a two-byte sub-code
	Extended = 0x00

	SequentialCircuits = 0x01
	Kawai              = 0x40
	Roland             = 0x41
	Korg               = 0x42
	Yamaha             = 0x43

	// Development is reserved for non-commercial use
	Development = 0x7D

	// Unknown is the display name of an unregistered identifier
	Unknown = "*unknown*"
)

// ErrShortID is returned when a buffer ends before the identifier it announces.
var ErrShortID = errors.New("not enough data for manufacturer ID")

// ID is a MIDI manufacturer identifier. It is one byte long, or three bytes
// long when the first byte is Extended. IDs are comparable and can be used
// as map keys.
type ID struct {
	b [3]byte
	n int
}

// Parse decodes the identifier at the start of data.
func Parse(data []byte) (ID, error) {
	if len(data) < 1 {
		return ID{}, ErrShortID
	}
	if data[0] != Extended {
		return ID{b: [3]byte{data[0]}, n: 1}, nil
	}
	if len(data) < 3 {
		return ID{}, fmt.Errorf("%w: extended form needs 3 bytes, got %d", ErrShortID, len(data))
	}
	return ID{b: [3]byte{data[0], data[1], data[2]}, n: 3}, nil
}

// New builds an identifier from its bytes. Exactly one byte, or three bytes
// starting with Extended, are accepted.
func New(b ...byte) (ID, error) {
	switch {
	case len(b) == 1 && b[0] != Extended:
		return ID{b: [3]byte{b[0]}, n: 1}, nil
	case len(b) == 3 && b[0] == Extended:
		return ID{b: [3]byte{b[0], b[1], b[2]}, n: 3}, nil
	default:
		return ID{}, fmt.Errorf("invalid manufacturer ID % X", b)
	}
}

// ParseHex parses the forms "40", "40H", "00 00 0E" and "00H 00H 0EH".
func ParseHex(s string) (ID, error) {
	fields := strings.Fields(s)
	b := make([]byte, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSuffix(strings.TrimSuffix(f, "H"), "h")
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return ID{}, fmt.Errorf("invalid manufacturer ID %q: %w", s, err)
		}
		b = append(b, byte(v))
	}
	return New(b...)
}

func mustNew(b ...byte) ID {
	id, err := New(b...)
	if err != nil {
		panic(err)
	}
	return id
}

// Bytes returns a copy of the identifier bytes.
func (id ID) Bytes() []byte {
	return append([]byte(nil), id.b[:id.n]...)
}

// Len returns the encoded length: 1 or 3 (0 for the zero ID).
func (id ID) Len() int { return id.n }

// IsExtended reports whether this is a three-byte identifier.
func (id ID) IsExtended() bool { return id.n == 3 }

// Hex renders each byte as two-digit uppercase hex followed by "H".
func (id ID) Hex() string {
	parts := make([]string, id.n)
	for i := 0; i < id.n; i++ {
		parts[i] = fmt.Sprintf("%02XH", id.b[i])
	}
	return strings.Join(parts, " ")
}

// Name returns the display name from the built-in table.
func (id ID) Name() string {
	return NameFor(id)
}

// String returns "<name> (<hex>)"
func (id ID) String() string {
	return fmt.Sprintf("%s (%s)", id.Name(), id.Hex())
}

var defaultNames = map[ID]string{
	mustNew(SequentialCircuits):   "Sequential Circuits",
	mustNew(Extended, 0x00, 0x01): "Time/Warner Interactive",
	mustNew(Extended, 0x00, 0x0E): "Alesis Studio Electronics",
	mustNew(Extended, 0x20, 0x29): "Focusrite/Novation",
	mustNew(Kawai):                "Kawai Musical Instruments MFG. CO. Ltd",
	mustNew(Roland):               "Roland Corporation",
	mustNew(Korg):                 "Korg Inc.",
	mustNew(Yamaha):               "Yamaha Corporation",
	mustNew(Development):          "Development/Non-commercial",
}

// NameFor looks up id in the built-in table.
func NameFor(id ID) string {
	if name, ok := defaultNames[id]; ok {
		return name
	}
	return Unknown
}

// Registry maps identifiers to display names. It starts as a copy of the
// built-in table and can be extended, e.g. from the user's config file.
// The built-in table itself is never modified.
type Registry struct {
	names map[ID]string
}

// NewRegistry creates a registry seeded with the built-in names.
func NewRegistry() *Registry {
	names := make(map[ID]string, len(defaultNames))
	for id, name := range defaultNames {
		names[id] = name
	}
	return &Registry{names: names}
}

// Register adds or replaces the name for id.
func (r *Registry) Register(id ID, name string) {
	r.names[id] = name
}

// Name returns the registered name for id, or Unknown.
func (r *Registry) Name(id ID) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return Unknown
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	return len(r.names)
}
