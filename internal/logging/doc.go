// Package logging provides structured logging for k4tool.
//
// This package wraps zap logger with convenience functions for the decoder
// and the CLI. Logging is silent by default so that listings and generated
// SysEx bytes on stdout are never interleaved with diagnostics; set
// --log-level or K4TOOL_LOG_LEVEL to enable it. Output goes to stderr.
//
// # Log Levels
//
//   - Debug: framing decisions, header classification, hex dumps
//   - Info: files read, messages written
//   - Warn: recoverable oddities (trailing bytes, unnamed waves)
//   - Error: command failures
//
// # Structured Logging
//
//	logging.Debug("header classified",
//	    zap.String("function", h.Function.String()),
//	    zap.Uint8("substatus1", h.Substatus1),
//	)
//
// # Configuration
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
package logging
