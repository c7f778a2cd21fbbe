// Package main provides C-compatible exports for the blobpack library.
// Build with: go build -buildmode=c-shared -o blobpack.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} BlobpackResult;

// One input buffer for BlobpackEncode
typedef struct {
    char* data;
    int   data_len;
} CBuffer;
*/
import "C"

import (
	"encoding/binary"
	"unsafe"

	"github.com/logicossoftware/go-blobpack"
)

func main() {}

// BlobpackHeaderSize returns the size in bytes of one frame header.
//
//export BlobpackHeaderSize
func BlobpackHeaderSize() C.int {
	return C.int(blobpack.HeaderSize)
}

// BlobpackFreeResult frees memory allocated by other Blobpack functions.
// Must be called to avoid memory leaks.
//
//export BlobpackFreeResult
func BlobpackFreeResult(result C.BlobpackResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// BlobpackFreeString frees a C string allocated by Go.
//
//export BlobpackFreeString
func BlobpackFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

// makeResult creates a result with data.
func makeResult(data []byte) C.BlobpackResult {
	var result C.BlobpackResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

// makeError creates a result with an error message.
func makeError(err error) C.BlobpackResult {
	var result C.BlobpackResult
	result.error = C.CString(err.Error())
	return result
}

// cBytes views C memory as a Go slice without copying. The slice must not
// outlive the call.
func cBytes(data *C.char, n C.int) []byte {
	if data == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), int(n))
}

// BlobpackEncode packs buffers into a blob using the host byte order.
// Parameters:
//   - buffers: array of CBuffer structs (can be NULL when count is 0)
//   - count: number of buffers
//
// Returns BlobpackResult with the blob or error. Call BlobpackFreeResult when done.
//
//export BlobpackEncode
func BlobpackEncode(buffers *C.CBuffer, count C.int) C.BlobpackResult {
	var bufs [][]byte
	if count > 0 && buffers != nil {
		cbufs := unsafe.Slice(buffers, int(count))
		bufs = make([][]byte, len(cbufs))
		for i, b := range cbufs {
			bufs[i] = cBytes(b.data, b.data_len)
		}
	}
	return makeResult(blobpack.Encode(bufs))
}

// BlobpackDecodeSpans decodes a blob and returns the position of every frame
// body instead of copying it. The result data is a packed array of
// little-endian uint32 pairs (start, end), one pair per frame, giving offsets
// into the caller's own buffer.
//
// Returns BlobpackResult with the span array or error. An empty blob yields
// an empty result with no error. Call BlobpackFreeResult when done.
//
//export BlobpackDecodeSpans
func BlobpackDecodeSpans(data *C.char, dataLen C.int) C.BlobpackResult {
	spans, err := blobpack.Spans(cBytes(data, dataLen))
	if err != nil {
		return makeError(err)
	}
	out := make([]byte, 0, len(spans)*8)
	for _, s := range spans {
		out = binary.LittleEndian.AppendUint32(out, uint32(s.Start))
		out = binary.LittleEndian.AppendUint32(out, uint32(s.End))
	}
	return makeResult(out)
}

// BlobpackFrameCount returns the number of frames in a blob.
// Returns -1 on error.
//
//export BlobpackFrameCount
func BlobpackFrameCount(data *C.char, dataLen C.int) C.int {
	n, err := blobpack.Count(cBytes(data, dataLen))
	if err != nil {
		return -1
	}
	return C.int(n)
}

// BlobpackValidate checks the framing of a blob.
// Returns NULL on success, or an error message string on failure.
// Call BlobpackFreeString on the result if non-NULL.
//
//export BlobpackValidate
func BlobpackValidate(data *C.char, dataLen C.int) *C.char {
	if err := blobpack.Validate(cBytes(data, dataLen)); err != nil {
		return C.CString(err.Error())
	}
	return nil
}
