package indexer

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// HashBytes returns the SHA-256 digest of content as lowercase hex.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("%x", sum)
}

// HashFile returns the SHA-256 digest of the file at path as lowercase hex.
// The file is read incrementally, so memory use is independent of file size.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
