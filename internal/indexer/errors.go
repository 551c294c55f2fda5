package indexer

import "fmt"

// FileError records an indexing failure for a single file. Failures are
// collected per file so one bad file never aborts a directory run.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to index %s: %s", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
