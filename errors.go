package blobpack

import (
	"errors"
	"fmt"
)

var (
	ErrTooLarge            = errors.New("blobpack: blob too large")
	ErrInvalidEncodedIndex = errors.New("blobpack: invalid encoded index")
	ErrTruncatedHeader     = errors.New("blobpack: truncated header")
	ErrLimitExceeded       = errors.New("blobpack: limit exceeded")
)

// IndexError reports a frame header whose end offset lies past the end of the
// blob or before the start of its own body.
type IndexError struct {
	// Index is the raw header value.
	Index uint64
	// Frame is the zero-based position of the offending frame.
	Frame int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v %d in frame %d", ErrInvalidEncodedIndex, e.Index, e.Frame)
}

func (e *IndexError) Unwrap() error { return ErrInvalidEncodedIndex }

// TruncatedHeaderError reports a blob that ends inside a frame header.
type TruncatedHeaderError struct {
	Offset    int
	Remaining int
}

func (e *TruncatedHeaderError) Error() string {
	return fmt.Sprintf("%v: %d of %d bytes at offset %d", ErrTruncatedHeader, e.Remaining, HeaderSize, e.Offset)
}

func (e *TruncatedHeaderError) Unwrap() error { return ErrTruncatedHeader }
