package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logicossoftware/go-blobpack/internal/packer"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPackInspectUnpack(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("beta"), 0o644); err != nil {
		t.Fatal(err)
	}
	blob := filepath.Join(t.TempDir(), "assets.blob")

	out, err := run(t, "pack", src, "-o", blob, "--compression", "zstd", "--log-level", "error")
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !strings.Contains(out, "Packed 2 files") {
		t.Fatalf("pack output %q", out)
	}

	out, err = run(t, "inspect", blob, "--compression", "zstd", "--log-level", "error")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var s packer.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("inspect output not JSON: %v\n%s", err, out)
	}
	if s.Frames != 3 || len(s.Files) != 2 || s.Files[0].Path != "a.txt" {
		t.Fatalf("unexpected summary %+v", s)
	}

	dst := t.TempDir()
	if _, err := run(t, "unpack", blob, "-o", dst, "--compression", "zstd", "--log-level", "error"); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dst, "sub", "b.txt"))
	if err != nil || string(b) != "beta" {
		t.Fatalf("sub/b.txt = %q, %v", b, err)
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("compression = \"gzip\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	blob := filepath.Join(t.TempDir(), "x.blob")

	if _, err := run(t, "pack", src, "-o", blob, "--config", cfgPath); err == nil || !strings.Contains(err.Error(), "unknown codec") {
		t.Fatalf("expected codec error from config file, got %v", err)
	}
	if _, err := run(t, "pack", src, "-o", blob, "--config", cfgPath, "--compression", "lz4", "--log-level", "error"); err != nil {
		t.Fatalf("flag should override config file: %v", err)
	}
}

func TestArgsRequired(t *testing.T) {
	if _, err := run(t, "pack"); err == nil {
		t.Fatal("expected error for missing argument")
	}
}
