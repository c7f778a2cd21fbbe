package packer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/logicossoftware/go-blobpack"
	"github.com/logicossoftware/go-blobpack/internal/cliconfig"
)

func newTestPacker(t *testing.T, mutate func(*cliconfig.Config)) *Packer {
	t.Helper()
	cfg := cliconfig.DefaultConfig()
	cfg.Debounce = 20 * time.Millisecond
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return New(cfg, zerolog.Nop())
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

var sampleTree = map[string]string{
	"index.html":     "<h1>hi</h1>",
	"css/site.css":   "body{}",
	"img/empty.bin":  "",
	"img/nested/a.b": "nested",
}

func TestCollectDirSortedAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)
	writeTree(t, root, map[string]string{"out.blob": "old", ".out.blob.tmp-123": "partial"})

	p := newTestPacker(t, nil)
	files, err := p.CollectDir(root, filepath.Join(root, "out.blob"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"css/site.css", "img/empty.bin", "img/nested/a.b", "index.html"}
	if len(files) != len(want) {
		t.Fatalf("got %d files: %+v", len(files), files)
	}
	for i, w := range want {
		if files[i].Path != w {
			t.Fatalf("file %d = %q, want %q", i, files[i].Path, w)
		}
		if string(files[i].Data) != sampleTree[w] {
			t.Fatalf("file %q content %q", w, files[i].Data)
		}
	}
}

func TestPackUnpackRoundTrip_AllCodecs(t *testing.T) {
	for _, comp := range []string{"none", "zip", "zstd", "lz4", "br"} {
		t.Run(comp, func(t *testing.T) {
			src := t.TempDir()
			writeTree(t, src, sampleTree)
			out := filepath.Join(t.TempDir(), "assets.blob")

			p := newTestPacker(t, func(c *cliconfig.Config) { c.Compression = comp })
			st, err := p.PackDir(src, out)
			if err != nil {
				t.Fatalf("PackDir: %v", err)
			}
			if st.Files != len(sampleTree) || st.Codec.String() != comp {
				t.Fatalf("unexpected stats %+v", st)
			}

			dst := t.TempDir()
			n, err := p.UnpackFile(out, dst)
			if err != nil {
				t.Fatalf("UnpackFile: %v", err)
			}
			if n != len(sampleTree) {
				t.Fatalf("unpacked %d files", n)
			}
			for rel, content := range sampleTree {
				b, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(rel)))
				if err != nil {
					t.Fatal(err)
				}
				if string(b) != content {
					t.Fatalf("%s = %q, want %q", rel, b, content)
				}
			}
		})
	}
}

func TestPackDirCodecFromExtension(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, sampleTree)
	out := filepath.Join(t.TempDir(), "assets.blob.zst")

	p := newTestPacker(t, nil)
	st, err := p.PackDir(src, out)
	if err != nil {
		t.Fatal(err)
	}
	if st.Codec.String() != "zstd" {
		t.Fatalf("codec = %v", st.Codec)
	}
	b, err := p.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Files) != len(sampleTree) {
		t.Fatalf("got %d files", len(b.Files))
	}
}

func TestPackDirIntoSourceTree(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, sampleTree)
	out := filepath.Join(src, "self.blob")

	p := newTestPacker(t, nil)
	for i := 0; i < 2; i++ {
		st, err := p.PackDir(src, out)
		if err != nil {
			t.Fatal(err)
		}
		if st.Files != len(sampleTree) {
			t.Fatalf("pass %d: packed %d files, output included itself", i, st.Files)
		}
	}
}

func TestOpenRejectsByteOrderMismatch(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, sampleTree)
	out := filepath.Join(t.TempDir(), "assets.blob")

	if _, err := newTestPacker(t, func(c *cliconfig.Config) { c.ByteOrder = "big" }).PackDir(src, out); err != nil {
		t.Fatal(err)
	}
	_, err := newTestPacker(t, func(c *cliconfig.Config) { c.ByteOrder = "little" }).Open(out)
	if !errors.Is(err, blobpack.ErrInvalidEncodedIndex) {
		t.Fatalf("expected ErrInvalidEncodedIndex, got %v", err)
	}
}

func TestOpenFrameLimit(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, sampleTree)
	out := filepath.Join(t.TempDir(), "assets.blob")
	if _, err := newTestPacker(t, nil).PackDir(src, out); err != nil {
		t.Fatal(err)
	}
	_, err := newTestPacker(t, func(c *cliconfig.Config) { c.MaxFrames = 2 }).Open(out)
	if !errors.Is(err, blobpack.ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, sampleTree)
	out := filepath.Join(t.TempDir(), "assets.blob.lz4")
	p := newTestPacker(t, nil)
	if _, err := p.PackDir(src, out); err != nil {
		t.Fatal(err)
	}

	s, err := p.Inspect(out)
	if err != nil {
		t.Fatal(err)
	}
	if s.Codec != "lz4" || s.Frames != len(sampleTree)+1 || len(s.Files) != len(sampleTree) || s.Error != "" {
		t.Fatalf("unexpected summary %+v", s)
	}
	for _, f := range s.Files {
		if f.Bytes != len(sampleTree[f.Path]) || f.End-f.Start != f.Bytes {
			t.Fatalf("entry %+v", f)
		}
	}
}

func TestInspectPlainBlob(t *testing.T) {
	in := filepath.Join(t.TempDir(), "raw.blob")
	if err := os.WriteFile(in, blobpack.Encode([][]byte{[]byte("a"), []byte("bc")}), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := newTestPacker(t, nil).Inspect(in)
	if err != nil {
		t.Fatal(err)
	}
	if s.Frames != 2 || s.Error == "" || len(s.Files) != 0 {
		t.Fatalf("unexpected summary %+v", s)
	}

	bad := filepath.Join(t.TempDir(), "bad.blob")
	if err := os.WriteFile(bad, []byte{1, 2}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := newTestPacker(t, nil).Inspect(bad); !errors.Is(err, blobpack.ErrTruncatedHeader) {
		t.Fatalf("expected ErrTruncatedHeader, got %v", err)
	}
}

func TestWatchRepacksOnChange(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a"})
	out := filepath.Join(t.TempDir(), "watch.blob")
	p := newTestPacker(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx, src, out) }()

	waitFor(t, func() bool { return countFiles(p, out) == 1 })
	writeTree(t, src, map[string]string{"b.txt": "b"})
	waitFor(t, func() bool { return countFiles(p, out) == 2 })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingRoot(t *testing.T) {
	p := newTestPacker(t, nil)
	err := p.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "o.blob"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func countFiles(p *Packer, path string) int {
	b, err := p.Open(path)
	if err != nil {
		return -1
	}
	return len(b.Files)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
