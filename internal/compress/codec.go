// Package compress wraps stored blob files in an optional compression layer.
//
// The blob format itself never compresses; this package only serves the
// command-line tooling that writes blobs to disk. A compressed payload is an
// 8-byte little-endian uncompressed length followed by the codec's stream.
// An uncompressed payload is the blob itself.
package compress

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Codec uint8

const (
	None Codec = iota
	ZIP
	ZSTD
	LZ4
	BR
)

var (
	ErrUnknownCodec   = errors.New("compress: unknown codec")
	ErrInvalidPayload = errors.New("compress: invalid payload")
	ErrLimitExceeded  = errors.New("compress: limit exceeded")
)

var codecNames = map[Codec]string{
	None: "none",
	ZIP:  "zip",
	ZSTD: "zstd",
	LZ4:  "lz4",
	BR:   "br",
}

var codecExts = map[Codec]string{
	ZIP:  ".zip",
	ZSTD: ".zst",
	LZ4:  ".lz4",
	BR:   ".br",
}

func (c Codec) String() string {
	if n, ok := codecNames[c]; ok {
		return n
	}
	return fmt.Sprintf("codec(%d)", uint8(c))
}

// Ext returns the file extension conventionally used for c, or "" for None.
func (c Codec) Ext() string { return codecExts[c] }

// ParseCodec maps a codec name to a Codec. "brotli" and "zst" are accepted as aliases.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "zip":
		return ZIP, nil
	case "zstd", "zst":
		return ZSTD, nil
	case "lz4":
		return LZ4, nil
	case "br", "brotli":
		return BR, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// CodecForPath infers a codec from the file extension of p.
// Unknown extensions map to None.
func CodecForPath(p string) Codec {
	ext := strings.ToLower(filepath.Ext(p))
	for c, e := range codecExts {
		if e == ext {
			return c
		}
	}
	return None
}
