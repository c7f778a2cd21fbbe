package blobpack

import "fmt"

// Decode splits blob into its frame bodies.
//
// The returned slices alias blob; no body bytes are copied. Each has its
// capacity clipped to its length. An empty blob decodes to an empty, non-nil
// slice.
//
// Decode returns ErrTooLarge if blob is longer than MaxBlobLen,
// ErrLimitExceeded if a configured Limits bound is crossed, a *TruncatedHeaderError
// (ErrTruncatedHeader) if the blob ends inside a header, or an *IndexError
// (ErrInvalidEncodedIndex) for the first header that points past the end of
// the blob or before the start of its own body. On error no partial result is
// returned.
func Decode(blob []byte, opts ...ReadOption) ([][]byte, error) {
	cfg := newReadConfig(opts)
	out := [][]byte{}
	err := walk(blob, cfg, func(start, end int) {
		out = append(out, blob[start:end:end])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Spans is like Decode but reports each body as a bounds pair into blob.
func Spans(blob []byte, opts ...ReadOption) ([]Span, error) {
	cfg := newReadConfig(opts)
	out := []Span{}
	err := walk(blob, cfg, func(start, end int) {
		out = append(out, Span{Start: start, End: end})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walk visits every frame of blob in order, calling fn with the body bounds.
// It stops at the first invalid frame.
func walk(blob []byte, cfg readConfig, fn func(start, end int)) error {
	if uint64(len(blob)) > maxAddressable {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(blob), maxAddressable)
	}
	if uint64(len(blob)) > cfg.limits.MaxBlobLen {
		return fmt.Errorf("%w: blob length %d", ErrLimitExceeded, len(blob))
	}

	order := cfg.order.order()
	start, end := 0, 0
	for frame := 0; end < len(blob); frame++ {
		if cfg.limits.MaxFrames > 0 && frame >= cfg.limits.MaxFrames {
			return fmt.Errorf("%w: more than %d frames", ErrLimitExceeded, cfg.limits.MaxFrames)
		}
		hdr, ok := readHeader(blob, order, start)
		if !ok {
			return &TruncatedHeaderError{Offset: start, Remaining: len(blob) - start}
		}
		start += HeaderSize
		if uint64(hdr) > uint64(len(blob)) || uint64(hdr) < uint64(start) {
			return &IndexError{Index: uint64(hdr), Frame: frame}
		}
		end = int(hdr)
		fn(start, end)
		start = end
	}
	return nil
}
