package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (BLOBPACK_*).
// Flags in changed keep their values.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("compression", os.Getenv("BLOBPACK_COMPRESSION"), &cfg.Compression)
	s.setString("byte-order", os.Getenv("BLOBPACK_BYTE_ORDER"), &cfg.ByteOrder)
	s.setString("log-level", os.Getenv("BLOBPACK_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("max-frames", os.Getenv("BLOBPACK_MAX_FRAMES"), &cfg.MaxFrames); err != nil {
		return err
	}
	if err := s.setIntFromString("max-uncompressed", os.Getenv("BLOBPACK_MAX_UNCOMPRESSED"), &cfg.MaxUncompressed); err != nil {
		return err
	}
	return s.setDuration("debounce", os.Getenv("BLOBPACK_DEBOUNCE"), &cfg.Debounce)
}
