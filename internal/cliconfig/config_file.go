package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Compression     string `toml:"compression"`
	ByteOrder       string `toml:"byte_order"`
	MaxFrames       int    `toml:"max_frames"`
	MaxUncompressed int    `toml:"max_uncompressed"`
	Debounce        string `toml:"debounce"`
	LogLevel        string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.blobpack/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".blobpack", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to cfg.
// Flags in changed keep their values.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("compression", fc.Compression, &cfg.Compression)
	s.setString("byte-order", fc.ByteOrder, &cfg.ByteOrder)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setInt("max-frames", fc.MaxFrames, &cfg.MaxFrames)
	s.setInt("max-uncompressed", fc.MaxUncompressed, &cfg.MaxUncompressed)

	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
