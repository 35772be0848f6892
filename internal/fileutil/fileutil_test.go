package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.tiff")

	n, err := WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello world")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 11 {
		t.Fatalf("written = %d, want 11", n)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world" {
		t.Fatalf("content mismatch: %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteAtomicFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.tiff")
	boom := errors.New("boom")

	_, err := WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, found %d entries", len(entries))
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Megachile-20260101_1200.zip")

	got, err := UniquePath(path)
	if err != nil || got != path {
		t.Fatalf("UniquePath = %q, %v", got, err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = UniquePath(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "Megachile-20260101_1200-2.zip"); got != want {
		t.Fatalf("UniquePath = %q, want %q", got, want)
	}
	if err := os.WriteFile(got, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, _ = UniquePath(path)
	if want := filepath.Join(dir, "Megachile-20260101_1200-3.zip"); got != want {
		t.Fatalf("UniquePath = %q, want %q", got, want)
	}
}
