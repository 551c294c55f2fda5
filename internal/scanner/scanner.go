// Package scanner walks a directory tree and emits the files eligible for
// indexing, filtered by extension, size, and ignore patterns.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"docsearch/internal/contextutil"
)

// File describes a candidate file found during a scan.
type File struct {
	Path    string // Absolute file path
	RelPath string // Path relative to the scan root, forward slashes
	Name    string // Base filename
	Size    int64  // Size in bytes
	ModTime int64  // Last-modified time, Unix seconds
	Ext     string // Lowercased extension including the dot, e.g. ".md"
}

// Scanner filters a directory walk down to indexable files.
type Scanner struct {
	extensions     map[string]struct{}
	ignorePatterns []string
	maxFileSize    int64
}

// New creates a Scanner. extensions lists the file extensions to accept
// (including the leading dot); an empty list accepts every extension.
// ignorePatterns are shell patterns (filepath.Match) applied to each path
// segment; a matching directory is skipped entirely. maxFileSize caps
// accepted file size in bytes; zero means no cap.
func New(extensions, ignorePatterns []string, maxFileSize int64) *Scanner {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{
		extensions:     extSet,
		ignorePatterns: ignorePatterns,
		maxFileSize:    maxFileSize,
	}
}

// Scan walks root and returns every file that passes the filters.
// root must exist and be a directory. Entries below the root that cannot be
// accessed (permission denied, removed mid-scan) are skipped, not fatal.
func (s *Scanner) Scan(ctx context.Context, root string) ([]File, error) {
	logger := contextutil.LoggerFromContext(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to read scan root %s: %w", root, err)
			}
			logger.WarnContext(ctx, "skipping inaccessible path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Check for context cancellation between entries
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && s.ignored(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.ignored(name) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		if len(s.extensions) > 0 {
			if _, ok := s.extensions[ext]; !ok {
				return nil
			}
		}

		fi, err := d.Info()
		if err != nil {
			logger.WarnContext(ctx, "skipping unreadable file", "path", path, "error", err)
			return nil
		}
		if s.maxFileSize > 0 && fi.Size() > s.maxFileSize {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		files = append(files, File{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Name:    name,
			Size:    fi.Size(),
			ModTime: fi.ModTime().Unix(),
			Ext:     ext,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ignored reports whether a path segment matches any ignore pattern.
// Patterns without metacharacters compare as plain names.
func (s *Scanner) ignored(name string) bool {
	for _, pattern := range s.ignorePatterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
