package chunker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ChunkStream splits text read from r into overlapping windows, producing the
// same sequence Chunk would for the full text. It reads the source
// incrementally: memory use is bounded by the window size plus the read
// buffer, independent of input length. Each chunk is passed to emit in order;
// a non-nil error from emit stops reading and is returned unchanged.
func (c *Chunker) ChunkStream(r io.Reader, emit func(ChunkInfo) error) error {
	reader := bufio.NewReader(r)
	step := c.step()

	// window holds the runes of the current chunk. Between chunks the last
	// size-step runes are carried over as the overlap of the next window.
	window := make([]rune, 0, c.size)
	start := 0
	index := 0

	for {
		// Fill the window up to the configured size.
		eof := false
		for len(window) < c.size {
			ch, _, err := reader.ReadRune()
			if err != nil {
				if errors.Is(err, io.EOF) {
					eof = true
					break
				}
				return fmt.Errorf("failed to read chunk source: %w", err)
			}
			window = append(window, ch)
		}

		// Empty input, or the previous window ended exactly at EOF.
		if len(window) == 0 {
			return nil
		}

		// A full window may also end exactly at EOF; peek to find out so the
		// termination condition matches the batch variant.
		if !eof && len(window) == c.size {
			if _, err := reader.Peek(1); err != nil {
				if !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read chunk source: %w", err)
				}
				eof = true
			}
		}

		err := emit(ChunkInfo{
			Content:   string(window),
			StartChar: start,
			EndChar:   start + len(window),
			Index:     index,
		})
		if err != nil {
			return err
		}

		if eof {
			return nil
		}

		// Slide: drop the first step runes, keep the overlap.
		copy(window, window[step:])
		window = window[:len(window)-step]
		start += step
		index++
	}
}

// ChunkAllStream collects every chunk from ChunkStream into a slice.
func (c *Chunker) ChunkAllStream(r io.Reader) ([]ChunkInfo, error) {
	var chunks []ChunkInfo
	err := c.ChunkStream(r, func(chunk ChunkInfo) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}
