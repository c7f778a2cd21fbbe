package blobpack

// Encode packs bufs into a newly allocated blob.
//
// Each buffer is written as a 4-byte header holding the cumulative end offset
// of its body, followed by the buffer's bytes. The result is exactly
// EncodedLen(bufs) bytes long and decodes back to bufs in order. Inputs are not
// modified.
//
// Encode has no failure path. Callers must keep the total size within
// MaxBlobLen; a larger blob is rejected by Decode with ErrTooLarge.
func Encode(bufs [][]byte, opts ...WriteOption) []byte {
	return Append(make([]byte, 0, EncodedLen(bufs)), bufs, opts...)
}

// Append encodes bufs onto the end of dst and returns the extended slice.
// Header offsets are relative to the start of the appended blob, not to dst.
func Append(dst []byte, bufs [][]byte, opts ...WriteOption) []byte {
	cfg := newWriteConfig(opts)
	order := cfg.order.order()
	var end int
	for _, b := range bufs {
		end += HeaderSize + len(b)
		dst = appendHeader(dst, order, uint32(end))
		dst = append(dst, b...)
	}
	return dst
}

// EncodedLen returns the length of the blob Encode produces for bufs.
func EncodedLen(bufs [][]byte) int {
	n := HeaderSize * len(bufs)
	for _, b := range bufs {
		n += len(b)
	}
	return n
}
