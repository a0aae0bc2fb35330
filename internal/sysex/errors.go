package sysex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of decoding error that occurred
type ErrorType int

const (
	// ErrTypeFraming indicates a malformed outer envelope (too short, bad framing bytes)
	ErrTypeFraming ErrorType = iota
	// ErrTypeUnsupported indicates a well-formed message this tool cannot decode (Universal SysEx)
	ErrTypeUnsupported
	// ErrTypeEncoding indicates a non-ASCII byte inside a text field
	ErrTypeEncoding
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeFraming:
		return "Framing Error"
	case ErrTypeUnsupported:
		return "Unsupported Message"
	case ErrTypeEncoding:
		return "Encoding Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DecodeError represents an error that occurred while decoding a message
type DecodeError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Offset  int       // Byte offset of the offending byte, or -1
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (at offset %d)", e.Offset)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain inspection
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewFramingError creates a framing error
func NewFramingError(message string, err error) *DecodeError {
	return &DecodeError{
		Type:    ErrTypeFraming,
		Message: message,
		Offset:  -1,
		Err:     err,
	}
}

// NewUnsupportedError creates an unsupported-message error
func NewUnsupportedError(message string) *DecodeError {
	return &DecodeError{
		Type:    ErrTypeUnsupported,
		Message: message,
		Offset:  -1,
	}
}

// NewEncodingError creates an encoding error for the byte at offset
func NewEncodingError(message string, offset int) *DecodeError {
	return &DecodeError{
		Type:    ErrTypeEncoding,
		Message: message,
		Offset:  offset,
	}
}

func errorType(err error) (ErrorType, bool) {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.Type, true
	}
	return 0, false
}

// IsFramingError checks if an error is a framing error
func IsFramingError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeFraming
}

// IsUnsupportedError checks if an error is an unsupported-message error
func IsUnsupportedError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeUnsupported
}

// IsEncodingError checks if an error is an encoding error
func IsEncodingError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeEncoding
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	t, ok := errorType(err)
	if !ok {
		return err.Error()
	}

	switch t {
	case ErrTypeFraming:
		return "Not a valid MIDI System Exclusive message"
	case ErrTypeUnsupported:
		return "Universal System Exclusive messages are not supported"
	case ErrTypeEncoding:
		return "Patch name contains non-ASCII data"
	default:
		return err.Error()
	}
}

// GetTroubleshootingHints returns user-facing advice for an error
func GetTroubleshootingHints(err error) []string {
	t, ok := errorType(err)
	if !ok {
		return nil
	}

	switch t {
	case ErrTypeFraming:
		return []string{
			"Check that the file is a raw .syx dump (starts with F0, ends with F7)",
			"MIDI files (.mid) must be converted to .syx first",
			"A truncated transfer produces a short file: dump the bank again",
		}
	case ErrTypeUnsupported:
		return []string{
			"Universal SysEx (7EH/7FH) messages carry no manufacturer data",
			"Use a bank or patch dump from the synthesizer instead",
		}
	case ErrTypeEncoding:
		return []string{
			"The file may not be a K4 dump, or it is corrupted",
			"Run 'k4tool identify' to check the message header",
		}
	default:
		return nil
	}
}
