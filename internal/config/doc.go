// Package config provides user configuration management for k4tool.
//
// The configuration is a YAML file holding the default listing format, the
// log level, names for the K4's PCM waves and additional SysEx manufacturer
// names. The configuration follows OS-specific conventions for storage
// location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/k4tool/config.yaml or $HOME/.config/k4tool/config.yaml
//   - macOS: $HOME/.config/k4tool/config.yaml
//   - Windows: %LOCALAPPDATA%\k4tool\config.yaml
//
// The --config flag replaces the location via SetConfigPath.
//
// # Example
//
//	version: 1
//	list_format: grid
//	waves:
//	  1: SIN 1ST
//	  2: SIN 2ND
//	manufacturers:
//	  "00 20 33": Access Music Electronics
//
// # Thread Safety
//
// The global config uses sync.Once for safe initialization across goroutines.
// File writes are protected by a mutex and are atomic.
package config
