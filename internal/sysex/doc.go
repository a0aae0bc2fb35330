// Package sysex validates MIDI System Exclusive framing.
//
// A SysEx message on the wire looks like this:
//
//	F0            initiator
//	xx [xx xx]    manufacturer ID (three bytes when the first is 00)
//	...           manufacturer-specific payload
//	F7            terminator
//
// Parse strips the initiator, manufacturer ID and final byte and returns
// the payload for a device-specific decoder (see package k4).
//
// # Error Handling
//
// All decoding errors are *DecodeError values carrying an ErrorType:
//   - ErrTypeFraming: too short, or both framing bytes wrong
//   - ErrTypeUnsupported: Universal SysEx (7EH / 7FH)
//   - ErrTypeEncoding: non-ASCII data in a text field
//
// Use IsFramingError, IsUnsupportedError and IsEncodingError to inspect
// wrapped errors.
//
// # Framing Leniency
//
// Parse rejects a buffer only when the initiator AND the terminator are
// both wrong. Dumps captured with a missing or stray end byte still decode.
package sysex
