package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeFile creates a file with parent directories under root.
func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func relPaths(files []File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.RelPath
	}
	sort.Strings(paths)
	return paths
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "# Readme")
	writeFile(t, root, "main.go", "package main")
	writeFile(t, root, "image.png", "binary")
	writeFile(t, root, "docs/guide.md", "# Guide")
	writeFile(t, root, ".git/config", "[core]")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}")
	writeFile(t, root, "notes.tmp", "scratch")

	s := New([]string{".md", ".go", ".js"}, []string{".git", "node_modules", "*.tmp"}, 0)

	files, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{"docs/guide.md", "main.go", "readme.md"}
	got := relPaths(files)
	if len(got) != len(want) {
		t.Fatalf("Scan() returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scan() returned %v, want %v", got, want)
			break
		}
	}
}

func TestScan_FileMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/note.MD", "hello world")

	s := New([]string{".md"}, nil, 0)
	files, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Scan() returned %d files, want 1", len(files))
	}

	f := files[0]
	if f.RelPath != "sub/note.MD" {
		t.Errorf("RelPath = %q, want sub/note.MD", f.RelPath)
	}
	if f.Name != "note.MD" {
		t.Errorf("Name = %q, want note.MD", f.Name)
	}
	if f.Ext != ".md" {
		t.Errorf("Ext = %q, want .md (lowercased)", f.Ext)
	}
	if f.Size != int64(len("hello world")) {
		t.Errorf("Size = %d, want %d", f.Size, len("hello world"))
	}
	if f.ModTime == 0 {
		t.Error("ModTime not set")
	}
	if !filepath.IsAbs(f.Path) {
		t.Errorf("Path = %q, want absolute", f.Path)
	}
}

func TestScan_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.md", "tiny")
	writeFile(t, root, "big.md", "this file is larger than the cap")

	s := New([]string{".md"}, nil, 10)
	files, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(files) != 1 || files[0].Name != "small.md" {
		t.Fatalf("Scan() = %v, want only small.md", relPaths(files))
	}
}

func TestScan_AllExtensionsWhenEmpty(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "a")
	writeFile(t, root, "b.xyz", "b")

	s := New(nil, nil, 0)
	files, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Scan() returned %d files, want 2", len(files))
	}
}

func TestScan_SkipsInaccessibleEntries(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	writeFile(t, root, "readable.md", "fine")
	writeFile(t, root, "locked/hidden.md", "unreachable")

	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("Chmod() error = %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(locked, 0755)
	})

	// One unreadable directory must not abort the rest of the scan
	files, err := New(nil, nil, 0).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	got := relPaths(files)
	if len(got) != 1 || got[0] != "readable.md" {
		t.Fatalf("Scan() = %v, want only readable.md", got)
	}
}

func TestScan_Errors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		s := New(nil, nil, 0)
		if _, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Fatal("Scan() expected error for missing root")
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "file.md", "x")
		s := New(nil, nil, 0)
		if _, err := s.Scan(context.Background(), filepath.Join(root, "file.md")); err == nil {
			t.Fatal("Scan() expected error for non-directory root")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "file.md", "x")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := New(nil, nil, 0)
		if _, err := s.Scan(ctx, root); err == nil {
			t.Fatal("Scan() expected error for cancelled context")
		}
	})
}
