// Package chunker splits text into overlapping fixed-size character windows.
// It provides a batch variant operating on an in-memory string and a streaming
// variant operating on an io.Reader; both produce identical chunk sequences
// for the same input and configuration. Sizes and offsets are measured in
// runes so multi-byte text chunks the same way through either path.
package chunker

import (
	"fmt"
)

// ChunkInfo describes one window of a document's text.
type ChunkInfo struct {
	Content   string // Window text
	StartChar int    // Rune offset of the first character (inclusive)
	EndChar   int    // Rune offset past the last character (exclusive)
	Index     int    // 0-based sequence index within the document
}

// Chunker produces overlapping windows of a fixed size.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. size is the window length in runes and must be
// positive; overlap is the number of runes shared between consecutive windows
// and must not be negative. An overlap of size or more is accepted but the
// window step is clamped to one rune so chunking always terminates.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be greater than 0, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured window size in runes.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap in runes.
func (c *Chunker) Overlap() int { return c.overlap }

// step is the distance between consecutive window starts. When the overlap is
// at least the window size, the natural step would be zero or negative and
// chunking would never advance; the step is clamped to one so every window
// starts strictly after the previous one.
func (c *Chunker) step() int {
	step := c.size - c.overlap
	if step < 1 {
		step = 1
	}
	return step
}

// Chunk splits text into overlapping windows. Empty input yields no chunks.
// Windows cover every character: each starts step runes after the previous
// one and the final window ends at the end of the text, possibly shorter than
// the configured size.
func (c *Chunker) Chunk(text string) []ChunkInfo {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	step := c.step()

	var chunks []ChunkInfo
	for start, index := 0, 0; start < len(runes); start, index = start+step, index+1 {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, ChunkInfo{
			Content:   string(runes[start:end]),
			StartChar: start,
			EndChar:   end,
			Index:     index,
		})

		// The text is fully covered once a window reaches the end; a further
		// window would only repeat the tail of this one.
		if end == len(runes) {
			break
		}
	}

	return chunks
}
