package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreatePartFileRename(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out.txt")

	f, err := CreatePartFile(target)
	if err != nil {
		t.Fatalf("CreatePartFile: %v", err)
	}
	base := filepath.Base(f.Name())
	if !strings.HasPrefix(base, ".out.txt.") || !strings.HasSuffix(base, ".part") {
		t.Fatalf("unexpected part file name %q", base)
	}
	if _, err := f.WriteString("done"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.CloseAndRename(target); err != nil {
		t.Fatalf("CloseAndRename: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil || string(data) != "done" {
		t.Fatalf("target content %q, err %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(target))
	if len(entries) != 1 {
		t.Fatalf("part file left behind: %v", entries)
	}
}

func TestCloseAndRemove(t *testing.T) {
	f, err := CreatePartFile(filepath.Join(t.TempDir(), "x"))
	if err != nil {
		t.Fatalf("CreatePartFile: %v", err)
	}
	if err := f.CloseAndRemove(); err != nil {
		t.Fatalf("CloseAndRemove: %v", err)
	}
	if _, err := os.Stat(f.Name()); !os.IsNotExist(err) {
		t.Fatalf("file still exists")
	}
}

func TestDetectMIME(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "a.txt")
	os.WriteFile(txt, []byte("plain text\n"), 0o644)
	if got := DetectMIME(txt); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("DetectMIME = %q", got)
	}
	if got := DetectMIME(filepath.Join(dir, "missing")); got != defaultMIME {
		t.Fatalf("missing file should fall back, got %q", got)
	}
}
