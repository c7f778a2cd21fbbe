package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/logicossoftware/go-blobpack"
	"github.com/logicossoftware/go-blobpack/internal/compress"
)

// Config holds CLI configuration for blobpack.
type Config struct {
	Compression string
	ByteOrder   string

	MaxFrames       int
	MaxUncompressed int // bytes accepted from a compressed file

	Debounce time.Duration
	LogLevel string

	codec compress.Codec
	order blobpack.ByteOrder
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Compression:     "none",
		ByteOrder:       "native",
		MaxUncompressed: 1 << 30, // 1 GiB
		Debounce:        100 * time.Millisecond,
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors and resolves the codec and byte order.
func (c *Config) Validate() error {
	codec, err := compress.ParseCodec(c.Compression)
	if err != nil {
		return err
	}
	c.codec = codec

	order, ok := blobpack.ParseByteOrder(c.ByteOrder)
	if !ok {
		return fmt.Errorf("unknown byte order %q", c.ByteOrder)
	}
	c.order = order

	if c.MaxFrames < 0 {
		return fmt.Errorf("max frames must not be negative")
	}
	if c.MaxUncompressed <= 0 {
		return fmt.Errorf("max uncompressed must be positive")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Codec returns the compression codec resolved by Validate.
func (c Config) Codec() compress.Codec { return c.codec }

// ReadOptions returns the decode options implied by c.
func (c Config) ReadOptions() []blobpack.ReadOption {
	return []blobpack.ReadOption{
		blobpack.WithReadByteOrder(c.order),
		blobpack.WithReadLimits(blobpack.Limits{MaxFrames: c.MaxFrames}),
	}
}

// WriteOptions returns the encode options implied by c.
func (c Config) WriteOptions() []blobpack.WriteOption {
	return []blobpack.WriteOption{blobpack.WithWriteByteOrder(c.order)}
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
