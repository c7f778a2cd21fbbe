package blobpack

import (
	"encoding/binary"
	"math"
)

const (
	// HeaderSize is the size in bytes of each frame header.
	HeaderSize = 4

	// MaxBlobLen is the largest blob length a u32 header can address.
	MaxBlobLen uint64 = math.MaxUint32
)

// maxAddressable is checked by Decode before parsing. Tests lower it to reach
// the oversize path without a 4 GiB allocation.
var maxAddressable uint64 = MaxBlobLen

// ByteOrder selects how frame headers are encoded.
type ByteOrder uint8

const (
	// NativeEndian is the host byte order. It is the default.
	NativeEndian ByteOrder = 0
	LittleEndian ByteOrder = 1
	BigEndian    ByteOrder = 2
)

func (o ByteOrder) String() string {
	switch o {
	case NativeEndian:
		return "native"
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// ParseByteOrder maps "native", "little" or "big" to a ByteOrder.
func ParseByteOrder(s string) (ByteOrder, bool) {
	switch s {
	case "", "native":
		return NativeEndian, true
	case "little", "le":
		return LittleEndian, true
	case "big", "be":
		return BigEndian, true
	}
	return 0, false
}

type headerOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (o ByteOrder) order() headerOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}

// Span is the position of one frame body within a blob.
type Span struct {
	Start int
	End   int
}

// Len returns the body length.
func (s Span) Len() int { return s.End - s.Start }
