package indexer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashBytes(t *testing.T) {
	// sha256("abc"), a well-known test vector
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := HashBytes([]byte("abc")); got != want {
		t.Errorf("HashBytes(abc) = %s, want %s", got, want)
	}

	if HashBytes(nil) != HashBytes([]byte{}) {
		t.Error("HashBytes(nil) != HashBytes(empty)")
	}
}

func TestHashFile_MatchesHashBytes(t *testing.T) {
	content := []byte(strings.Repeat("streaming and in-memory hashing must agree\n", 1000))
	path := filepath.Join(t.TempDir(), "big.txt")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if want := HashBytes(content); got != want {
		t.Errorf("HashFile() = %s, want %s", got, want)
	}
}

func TestHashFile_Missing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("HashFile() expected error for missing file")
	}
}
