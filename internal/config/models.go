package config

import (
	"fmt"

	"github.com/muurk/k4tool/internal/k4"
	"github.com/muurk/k4tool/internal/listing"
	"github.com/muurk/k4tool/internal/logging"
	"github.com/muurk/k4tool/internal/manufacturer"
)

// CurrentVersion is the only config file version this build understands
const CurrentVersion = 1

// DefaultListFormat is used when the config file does not name one
const DefaultListFormat = "text"

// Config represents the entire user configuration file.
type Config struct {
	Version    int    `yaml:"version"`
	LogLevel   string `yaml:"log_level,omitempty"`   // debug, info, warn, error; empty = silent
	ListFormat string `yaml:"list_format,omitempty"` // default --format for `list`

	// Waves names the K4's PCM waves, keyed by wave number 1-256
	Waves map[int]string `yaml:"waves,omitempty"`

	// Manufacturers adds or overrides manufacturer names, keyed by hex ID
	// ("40", "00 00 0E")
	Manufacturers map[string]string `yaml:"manufacturers,omitempty"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version:       CurrentVersion,
		ListFormat:    DefaultListFormat,
		Waves:         make(map[int]string),
		Manufacturers: make(map[string]string),
	}
}

// Validate checks the values read from disk.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	if c.ListFormat != "" && !listing.ValidFormat(c.ListFormat) {
		return fmt.Errorf("list_format: %w", &listing.FormatError{Format: c.ListFormat})
	}
	if _, err := c.WaveTable(); err != nil {
		return fmt.Errorf("waves: %w", err)
	}
	if _, err := c.ManufacturerRegistry(); err != nil {
		return fmt.Errorf("manufacturers: %w", err)
	}
	return nil
}

// WaveTable builds the wave name table from the waves map.
func (c *Config) WaveTable() (*k4.WaveTable, error) {
	return k4.NewWaveTable(c.Waves)
}

// ManufacturerRegistry returns the built-in manufacturer names with the
// config file's entries added on top.
func (c *Config) ManufacturerRegistry() (*manufacturer.Registry, error) {
	reg := manufacturer.NewRegistry()
	for key, name := range c.Manufacturers {
		id, err := manufacturer.ParseHex(key)
		if err != nil {
			return nil, err
		}
		reg.Register(id, name)
	}
	return reg, nil
}

// SetWave sets or replaces the name of a wave.
func (c *Config) SetWave(number int, name string) error {
	if number < 1 || number > k4.WaveCount {
		return fmt.Errorf("bad wave number: %d", number)
	}
	if c.Waves == nil {
		c.Waves = make(map[int]string)
	}
	c.Waves[number] = name
	return nil
}
