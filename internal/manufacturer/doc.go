// Package manufacturer decodes MIDI manufacturer identifiers and maps them
// to display names.
//
// An identifier is a single byte, unless the first byte is 0x00, in which
// case the next two bytes complete a three-byte "extended" identifier:
//
//	40            Kawai
//	00 00 0E      Alesis Studio Electronics
//
// Unregistered identifiers are valid; they simply have the name "*unknown*".
// The built-in table is read-only and safe for concurrent use. A Registry
// copies it and can be extended with names from the user's configuration.
package manufacturer
