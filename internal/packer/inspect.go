package packer

import (
	"os"

	"github.com/logicossoftware/go-blobpack"
	"github.com/logicossoftware/go-blobpack/internal/bundle"
	"github.com/logicossoftware/go-blobpack/internal/compress"
)

// Summary describes a bundle file without extracting it.
type Summary struct {
	Path        string      `json:"path"`
	Codec       string      `json:"codec"`
	StoredBytes int         `json:"stored_bytes"`
	BlobBytes   int         `json:"blob_bytes"`
	Frames      int         `json:"frames"`
	Files       []FileEntry `json:"files,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// FileEntry is one bundle entry with its body position inside the blob.
type FileEntry struct {
	Path  string `json:"path"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Bytes int    `json:"bytes"`
}

// Inspect summarizes the bundle at in. Framing is reported even when the
// manifest is missing or invalid; in that case Error is set and Files is empty.
func (p *Packer) Inspect(in string) (Summary, error) {
	stored, err := os.ReadFile(in)
	if err != nil {
		return Summary{}, err
	}
	codec := p.codecFor(in)
	blob, err := compress.Decompress(codec, stored, uint64(p.cfg.MaxUncompressed))
	if err != nil {
		return Summary{}, err
	}
	spans, err := blobpack.Spans(blob, p.cfg.ReadOptions()...)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		Path:        in,
		Codec:       codec.String(),
		StoredBytes: len(stored),
		BlobBytes:   len(blob),
		Frames:      len(spans),
	}
	b, err := bundle.Unpack(blob, p.cfg.ReadOptions()...)
	if err != nil {
		s.Error = err.Error()
		return s, nil
	}
	for i, f := range b.Files {
		sp := spans[i+1]
		s.Files = append(s.Files, FileEntry{Path: f.Path, Start: sp.Start, End: sp.End, Bytes: sp.Len()})
	}
	return s, nil
}
