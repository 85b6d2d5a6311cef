package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile_WritesAndFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	lines := []string{"first\n", "second\n"}
	for _, line := range lines {
		if _, err := f.Write([]byte(line)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != strings.Join(lines, "") {
		t.Errorf("file holds %q", content)
	}
}

func TestFile_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "app.log")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile with missing parents: %v", err)
	}
	defer f.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestFile_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, err := f.Write([]byte("new\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "old\nnew\n" {
		t.Errorf("file holds %q", content)
	}
}

func TestFile_SizeTracksWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	if f.Size() != 0 {
		t.Errorf("initial Size = %d", f.Size())
	}
	f.Write([]byte("12345"))
	if f.Size() != 5 {
		t.Errorf("Size = %d, want 5", f.Size())
	}
}

func TestFile_Name(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	if got := f.Name(); got != "file:"+path {
		t.Errorf("Name = %q", got)
	}
}
