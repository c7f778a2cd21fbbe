package blobpack

// Validate reports whether blob is validly framed, without building a result.
func Validate(blob []byte, opts ...ReadOption) error {
	_, err := Count(blob, opts...)
	return err
}

// Count returns the number of frames in blob.
func Count(blob []byte, opts ...ReadOption) (int, error) {
	cfg := newReadConfig(opts)
	var n int
	if err := walk(blob, cfg, func(int, int) { n++ }); err != nil {
		return 0, err
	}
	return n, nil
}
