// Package bundle stores named files in a blob.
//
// Frame 0 of a bundle blob holds a JSON manifest listing container paths.
// Frames 1..N hold the file bodies in manifest order. Any tool that only knows
// the blob format can still split a bundle; the manifest just names the parts.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/logicossoftware/go-blobpack"
)

const VersionV1 = 1

var (
	ErrManifest   = errors.New("bundle: invalid manifest")
	ErrValidation = errors.New("bundle: validation failed")
)

// File is one named entry. After Unpack, Data aliases the source blob.
type File struct {
	Path string
	Data []byte
}

// Bundle is the logical content of a bundle blob.
type Bundle struct {
	Files []File
}

type manifest struct {
	Version int      `json:"version"`
	Paths   []string `json:"paths"`
}

// Size returns the total body size of all files.
func (b *Bundle) Size() int {
	var n int
	for _, f := range b.Files {
		n += len(f.Data)
	}
	return n
}

// Lookup returns the file stored under path.
func (b *Bundle) Lookup(path string) (File, bool) {
	for _, f := range b.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// Pack validates files and encodes them, manifest first, into a blob.
func Pack(files []File, opts ...blobpack.WriteOption) ([]byte, error) {
	if err := validateFiles(files); err != nil {
		return nil, err
	}
	m := manifest{Version: VersionV1, Paths: make([]string, len(files))}
	for i, f := range files {
		m.Paths[i] = f.Path
	}
	mb, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	bufs := make([][]byte, 0, len(files)+1)
	bufs = append(bufs, mb)
	for _, f := range files {
		bufs = append(bufs, f.Data)
	}
	return blobpack.Encode(bufs, opts...), nil
}

// Unpack decodes a bundle blob. The returned file bodies alias blob.
func Unpack(blob []byte, opts ...blobpack.ReadOption) (*Bundle, error) {
	parts, err := blobpack.Decode(blob, opts...)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: blob has no manifest frame", ErrManifest)
	}
	var m manifest
	if err := json.Unmarshal(parts[0], &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	if m.Version != VersionV1 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrManifest, m.Version)
	}
	if len(m.Paths) != len(parts)-1 {
		return nil, fmt.Errorf("%w: manifest lists %d paths, blob has %d bodies", ErrManifest, len(m.Paths), len(parts)-1)
	}
	b := &Bundle{Files: make([]File, len(m.Paths))}
	for i, p := range m.Paths {
		b.Files[i] = File{Path: p, Data: parts[i+1]}
	}
	if err := validateFiles(b.Files); err != nil {
		return nil, err
	}
	return b, nil
}
