package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/muurk/k4tool/internal/k4"
	"github.com/muurk/k4tool/internal/manufacturer"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "k4tool") {
		t.Errorf("GetConfigDir() = %v, should contain 'k4tool'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, "k4tool"); configDir != want {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestSetConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	SetConfigPath(path)
	defer SetConfigPath("")

	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if got != path {
		t.Errorf("GetConfigPath() = %v, want %v", got, path)
	}

	// Missing file loads the defaults
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != CurrentVersion || cfg.ListFormat != DefaultListFormat {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != 1 {
		t.Errorf("NewConfig().Version = %v, want 1", cfg.Version)
	}
	if cfg.ListFormat != "text" {
		t.Errorf("NewConfig().ListFormat = %q, want text", cfg.ListFormat)
	}
	if cfg.Waves == nil || cfg.Manufacturers == nil {
		t.Error("NewConfig() maps should not be nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("NewConfig().Validate() error = %v", err)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.LogLevel = "debug"
	cfg.ListFormat = "grid"
	if err := cfg.SetWave(1, "SIN 1ST"); err != nil {
		t.Fatalf("SetWave() error = %v", err)
	}
	if err := cfg.SetWave(256, "LAST"); err != nil {
		t.Fatalf("SetWave() error = %v", err)
	}
	cfg.Manufacturers["00 20 33"] = "Access Music Electronics"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after SaveTo()")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# k4tool configuration file") {
		t.Error("saved file should start with the header comment")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if loaded.LogLevel != "debug" || loaded.ListFormat != "grid" {
		t.Errorf("LoadFile() = %+v", loaded)
	}
	if loaded.Waves[1] != "SIN 1ST" || loaded.Waves[256] != "LAST" {
		t.Errorf("Waves = %v", loaded.Waves)
	}
	if loaded.Manufacturers["00 20 33"] != "Access Music Electronics" {
		t.Errorf("Manufacturers = %v", loaded.Manufacturers)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "version: [1\n"},
		{"wrong version", "version: 2\n"},
		{"bad log level", "version: 1\nlog_level: loud\n"},
		{"bad list format", "version: 1\nlist_format: pdf\n"},
		{"bad wave number", "version: 1\nwaves:\n  300: TOO HIGH\n"},
		{"bad manufacturer key", "version: 1\nmanufacturers:\n  \"zz\": Nobody\n"},
		{"extended key without prefix", "version: 1\nmanufacturers:\n  \"20 00 0E\": Nobody\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() should fail")
			}
		})
	}
}

func TestManufacturerRegistry(t *testing.T) {
	cfg := NewConfig()
	cfg.Manufacturers["00 20 33"] = "Access Music Electronics"
	cfg.Manufacturers["40"] = "Kawai"

	reg, err := cfg.ManufacturerRegistry()
	if err != nil {
		t.Fatalf("ManufacturerRegistry() error = %v", err)
	}

	access, _ := manufacturer.New(0x00, 0x20, 0x33)
	if got := reg.Name(access); got != "Access Music Electronics" {
		t.Errorf("Name(access) = %q", got)
	}
	kawai, _ := manufacturer.New(manufacturer.Kawai)
	if got := reg.Name(kawai); got != "Kawai" {
		t.Errorf("Name(kawai) = %q, want override", got)
	}
	roland, _ := manufacturer.New(manufacturer.Roland)
	if got := reg.Name(roland); got != "Roland Corporation" {
		t.Errorf("Name(roland) = %q, want built-in name", got)
	}
}

func TestWaveTable(t *testing.T) {
	cfg := NewConfig()
	cfg.Waves[5] = "SAW 1"

	table, err := cfg.WaveTable()
	if err != nil {
		t.Fatalf("WaveTable() error = %v", err)
	}
	if name, _ := table.Name(5); name != "SAW 1" {
		t.Errorf("Name(5) = %q", name)
	}
	if name, _ := table.Name(6); name != k4.UnnamedWave {
		t.Errorf("Name(6) = %q, want %q", name, k4.UnnamedWave)
	}

	if err := cfg.SetWave(0, "zero"); err == nil {
		t.Error("SetWave(0) should fail")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	SetConfigPath(path)
	defer SetConfigPath("")

	got, err := CreateDefaultConfig(false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if got != path {
		t.Errorf("CreateDefaultConfig() path = %v, want %v", got, path)
	}

	if _, err := CreateDefaultConfig(false); err == nil {
		t.Error("CreateDefaultConfig() should refuse to overwrite")
	}
	if _, err := CreateDefaultConfig(true); err != nil {
		t.Errorf("CreateDefaultConfig(true) error = %v", err)
	}

	cfg, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if cfg.Waves[1] == "" {
		t.Error("default config should carry an example wave name")
	}
}
