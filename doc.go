// Package blobpack implements a minimal binary framing format for bundling byte buffers.
//
// A blob is the concatenation of zero or more frames. Each frame is a 4-byte
// unsigned header followed by a body. The header does not hold the body length:
// it holds the absolute offset, from the start of the blob, at which the body
// ends. That offset is also where the next frame's header begins.
//
// # Wire Format
//
//	blob  := frame*
//	frame := header(u32, cumulative end offset) body
//
// There is no magic number, version tag, or footer. Headers are written in the
// host's native byte order by default, so a blob produced on a little-endian
// machine is not readable on a big-endian one. [WithWriteByteOrder] and
// [WithReadByteOrder] select a fixed order instead; both sides must agree.
//
// # Basic Usage
//
//	blob := blobpack.Encode([][]byte{
//		[]byte("first"),
//		[]byte("second"),
//	})
//
//	parts, err := blobpack.Decode(blob)
//	if err != nil {
//		// errors.Is(err, blobpack.ErrInvalidEncodedIndex), ...
//	}
//
// # Aliasing
//
// Decode does not copy frame bodies. Every returned slice points into the blob
// passed to it, so the blob must not be modified while the slices are in use.
// The returned slices have their capacity clipped to their length: appending
// to one reallocates instead of overwriting the following header.
//
// The package performs no compression, checksumming, or streaming. It moves
// raw bytes only.
package blobpack
