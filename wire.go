package blobpack

// appendHeader appends end as a frame header.
func appendHeader(dst []byte, order headerOrder, end uint32) []byte {
	return order.AppendUint32(dst, end)
}

// readHeader reads the frame header at off. ok is false when fewer than
// HeaderSize bytes remain.
func readHeader(blob []byte, order headerOrder, off int) (end uint32, ok bool) {
	if len(blob)-off < HeaderSize {
		return 0, false
	}
	return order.Uint32(blob[off : off+HeaderSize]), true
}
