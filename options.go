package blobpack

type readConfig struct {
	limits Limits
	order  ByteOrder
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithReadByteOrder sets the byte order headers are decoded with.
// It must match the order the blob was written with.
func WithReadByteOrder(o ByteOrder) ReadOption {
	return func(c *readConfig) { c.order = o }
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: DefaultLimits(), order: NativeEndian}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

type writeConfig struct {
	order ByteOrder
}

type WriteOption func(*writeConfig)

// WithWriteByteOrder sets the byte order headers are encoded with.
func WithWriteByteOrder(o ByteOrder) WriteOption {
	return func(c *writeConfig) { c.order = o }
}

func newWriteConfig(opts []WriteOption) writeConfig {
	cfg := writeConfig{order: NativeEndian}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
