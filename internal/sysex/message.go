package sysex

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/k4tool/internal/logging"
	"github.com/muurk/k4tool/internal/manufacturer"
)

// SysEx framing constants
const (
	Initiator  = 0xF0
	Terminator = 0xF7

	// MinMessageSize is initiator + manufacturer + one data byte + terminator
	MinMessageSize = 4

	UniversalNonRealtime = 0x7E
	UniversalRealtime    = 0x7F
)

// Message is a framed System Exclusive message. Payload and Raw alias the
// buffer passed to Parse; neither is modified after construction.
type Message struct {
	Manufacturer manufacturer.ID
	Payload      []byte // bytes between the manufacturer ID and the final byte
	Raw          []byte // original message bytes
}

// Parse validates the SysEx framing of data and splits off the manufacturer
// ID and payload.
//
// Framing is rejected only when the initiator and the terminator are both
// wrong; a message with one good framing byte is accepted.
func Parse(data []byte) (*Message, error) {
	logging.LogRawBytes("parsing SysEx message", data)

	if len(data) < MinMessageSize {
		return nil, NewFramingError(
			fmt.Sprintf("not enough data for a MIDI System Exclusive message: %d bytes (minimum %d)", len(data), MinMessageSize),
			nil)
	}

	last := data[len(data)-1]
	if data[0] != Initiator && last != Terminator {
		return nil, NewFramingError(
			fmt.Sprintf("not a MIDI System Exclusive message: starts with 0x%02X, ends with 0x%02X", data[0], last),
			nil)
	}
	if data[0] != Initiator || last != Terminator {
		logging.Warn("accepting message with one bad framing byte",
			zap.Uint8("first", data[0]),
			zap.Uint8("last", last),
		)
	}

	if data[1] == UniversalNonRealtime || data[1] == UniversalRealtime {
		return nil, NewUnsupportedError(
			fmt.Sprintf("Universal System Exclusive message (0x%02X) is not supported", data[1]))
	}

	id, err := manufacturer.Parse(data[1:])
	if err != nil {
		return nil, NewFramingError("invalid manufacturer ID", err)
	}

	start := 1 + id.Len()
	end := len(data) - 1
	payload := []byte{}
	if start < end {
		payload = data[start:end]
	}

	logging.Debug("SysEx message framed",
		zap.String("manufacturer", id.Hex()),
		zap.Int("payload_length", len(payload)),
	)

	return &Message{
		Manufacturer: id,
		Payload:      payload,
		Raw:          data,
	}, nil
}

// String returns a debug representation of the message
func (m *Message) String() string {
	return fmt.Sprintf("Message{manufacturer=%s, payload=%d bytes}",
		m.Manufacturer.Hex(), len(m.Payload))
}

// Split cuts a buffer holding several concatenated messages before each
// initiator and after each terminator. A chunk that does not start with an
// initiator is joined onto the previous message, so stray bytes after a
// dump (a trailing newline, say) stay with it and Parse can apply its
// lenient framing. Leading bytes before the first message form a chunk of
// their own.
func Split(data []byte) [][]byte {
	var chunks [][]byte
	start := 0
	cut := func(end int) {
		if n := len(chunks); n > 0 && data[start] != Initiator {
			prev := chunks[n-1]
			chunks[n-1] = data[start-len(prev) : end]
		} else {
			chunks = append(chunks, data[start:end])
		}
		start = end
	}

	for i, b := range data {
		switch {
		case b == Initiator && i > start:
			cut(i)
		case b == Terminator:
			cut(i + 1)
		}
	}
	if start < len(data) {
		cut(len(data))
	}
	return chunks
}

// ParseAll splits data into messages and parses each one. The first error
// aborts parsing; it is wrapped with the 1-based message index.
func ParseAll(data []byte) ([]*Message, error) {
	chunks := Split(data)
	if len(chunks) == 0 {
		return nil, NewFramingError("no System Exclusive data", nil)
	}

	messages := make([]*Message, 0, len(chunks))
	for i, chunk := range chunks {
		msg, err := Parse(chunk)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i+1, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
