// Package packer turns directories into bundle blobs on disk and back.
package packer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/logicossoftware/go-blobpack"
	"github.com/logicossoftware/go-blobpack/internal/bundle"
	"github.com/logicossoftware/go-blobpack/internal/cliconfig"
	"github.com/logicossoftware/go-blobpack/internal/compress"
)

// Packer packs and unpacks bundle files using one configuration.
type Packer struct {
	cfg cliconfig.Config
	log zerolog.Logger
}

// Stats describes one written bundle file.
type Stats struct {
	Files       int
	BodyBytes   int
	BlobBytes   int
	StoredBytes int
	Codec       compress.Codec
}

// New returns a Packer. cfg must already be validated.
func New(cfg cliconfig.Config, log zerolog.Logger) *Packer {
	return &Packer{cfg: cfg, log: log}
}

// CollectDir reads every regular file under root, in lexical path order.
// Container paths are slash-separated and relative to root. Files named in
// exclude, and temp files left by an interrupted write, are skipped.
func (p *Packer) CollectDir(root string, exclude ...string) ([]bundle.File, error) {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[absPath(e)] = struct{}{}
	}
	var rels []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || isTempFile(path) {
			return nil
		}
		if _, ok := skip[absPath(path)]; ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(rels)

	files := make([]bundle.File, 0, len(rels))
	for _, rel := range rels {
		b, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, err
		}
		files = append(files, bundle.File{Path: filepath.ToSlash(rel), Data: b})
	}
	return files, nil
}

// PackDir bundles root into out. The codec is taken from the configuration,
// or from out's extension when the configuration says none.
func (p *Packer) PackDir(root, out string) (Stats, error) {
	files, err := p.CollectDir(root, out)
	if err != nil {
		return Stats{}, fmt.Errorf("collect %s: %w", root, err)
	}
	blob, err := bundle.Pack(files, p.cfg.WriteOptions()...)
	if err != nil {
		return Stats{}, err
	}
	if uint64(len(blob)) > blobpack.MaxBlobLen {
		return Stats{}, fmt.Errorf("%w: bundle is %d bytes", blobpack.ErrTooLarge, len(blob))
	}
	codec := p.codecFor(out)
	stored, err := compress.Compress(codec, blob)
	if err != nil {
		return Stats{}, fmt.Errorf("compress: %w", err)
	}
	if err := writeFileAtomic(out, stored); err != nil {
		return Stats{}, err
	}

	st := Stats{
		Files:       len(files),
		BlobBytes:   len(blob),
		StoredBytes: len(stored),
		Codec:       codec,
	}
	for _, f := range files {
		st.BodyBytes += len(f.Data)
	}
	p.log.Info().
		Str("out", out).
		Int("files", st.Files).
		Int("blob_bytes", st.BlobBytes).
		Int("stored_bytes", st.StoredBytes).
		Str("codec", codec.String()).
		Msg("packed bundle")
	return st, nil
}

// Open reads a bundle file, decompressing it as needed.
func (p *Packer) Open(in string) (*bundle.Bundle, error) {
	stored, err := os.ReadFile(in)
	if err != nil {
		return nil, err
	}
	blob, err := compress.Decompress(p.codecFor(in), stored, uint64(p.cfg.MaxUncompressed))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", in, err)
	}
	b, err := bundle.Unpack(blob, p.cfg.ReadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", in, err)
	}
	return b, nil
}

// UnpackFile extracts every file of the bundle at in below outDir.
func (p *Packer) UnpackFile(in, outDir string) (int, error) {
	b, err := p.Open(in)
	if err != nil {
		return 0, err
	}
	for _, f := range b.Files {
		dst := filepath.Join(outDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return 0, err
		}
		if err := os.WriteFile(dst, f.Data, 0o644); err != nil {
			return 0, err
		}
		p.log.Debug().Str("path", dst).Int("bytes", len(f.Data)).Msg("wrote file")
	}
	p.log.Info().Str("in", in).Str("out", outDir).Int("files", len(b.Files)).Msg("unpacked bundle")
	return len(b.Files), nil
}

func (p *Packer) codecFor(path string) compress.Codec {
	if c := p.cfg.Codec(); c != compress.None {
		return c
	}
	return compress.CodecForPath(path)
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

const tempInfix = ".tmp-"

func isTempFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && strings.Contains(base, tempInfix)
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+tempInfix+"*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
