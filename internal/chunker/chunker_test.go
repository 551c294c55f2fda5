package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"valid", 100, 20, false},
		{"zero overlap", 100, 0, false},
		{"overlap equals size", 100, 100, false},
		{"overlap exceeds size", 100, 150, false},
		{"zero size", 0, 0, true},
		{"negative size", -1, 0, true},
		{"negative overlap", 100, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d, %d) error = %v, wantErr %v", tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		text    string
		want    []ChunkInfo
	}{
		{
			name: "documented example",
			size: 4, overlap: 1,
			text: "abcdefghij",
			want: []ChunkInfo{
				{Content: "abcd", StartChar: 0, EndChar: 4, Index: 0},
				{Content: "defg", StartChar: 3, EndChar: 7, Index: 1},
				{Content: "ghij", StartChar: 6, EndChar: 10, Index: 2},
			},
		},
		{
			name: "empty input",
			size: 4, overlap: 1,
			text: "",
			want: nil,
		},
		{
			name: "text shorter than window",
			size: 10, overlap: 2,
			text: "abc",
			want: []ChunkInfo{
				{Content: "abc", StartChar: 0, EndChar: 3, Index: 0},
			},
		},
		{
			name: "text equals window",
			size: 3, overlap: 1,
			text: "abc",
			want: []ChunkInfo{
				{Content: "abc", StartChar: 0, EndChar: 3, Index: 0},
			},
		},
		{
			name: "no overlap",
			size: 2, overlap: 0,
			text: "abcde",
			want: []ChunkInfo{
				{Content: "ab", StartChar: 0, EndChar: 2, Index: 0},
				{Content: "cd", StartChar: 2, EndChar: 4, Index: 1},
				{Content: "e", StartChar: 4, EndChar: 5, Index: 2},
			},
		},
		{
			name: "overlap equals size advances by one",
			size: 2, overlap: 2,
			text: "abcd",
			want: []ChunkInfo{
				{Content: "ab", StartChar: 0, EndChar: 2, Index: 0},
				{Content: "bc", StartChar: 1, EndChar: 3, Index: 1},
				{Content: "cd", StartChar: 2, EndChar: 4, Index: 2},
			},
		},
		{
			name: "multibyte runes",
			size: 3, overlap: 1,
			text: "héllø!",
			want: []ChunkInfo{
				{Content: "hél", StartChar: 0, EndChar: 3, Index: 0},
				{Content: "llø", StartChar: 2, EndChar: 5, Index: 1},
				{Content: "ø!", StartChar: 4, EndChar: 6, Index: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got := c.Chunk(tt.text)
			assertChunksEqual(t, got, tt.want)
		})
	}
}

func TestChunk_Properties(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20)

	configs := []struct{ size, overlap int }{
		{50, 10}, {100, 0}, {7, 3}, {1, 0}, {30, 29},
	}

	for _, cfg := range configs {
		c, err := New(cfg.size, cfg.overlap)
		if err != nil {
			t.Fatalf("New(%d, %d) error = %v", cfg.size, cfg.overlap, err)
		}

		chunks := c.Chunk(text)
		if len(chunks) == 0 {
			t.Fatalf("size=%d overlap=%d: no chunks for non-empty text", cfg.size, cfg.overlap)
		}

		runes := []rune(text)
		step := cfg.size - cfg.overlap
		if step < 1 {
			step = 1
		}

		for i, chunk := range chunks {
			if chunk.Index != i {
				t.Errorf("size=%d overlap=%d: chunk %d has index %d", cfg.size, cfg.overlap, i, chunk.Index)
			}
			if chunk.StartChar < 0 || chunk.StartChar >= chunk.EndChar || chunk.EndChar > len(runes) {
				t.Errorf("size=%d overlap=%d: chunk %d has invalid offsets (%d, %d)", cfg.size, cfg.overlap, i, chunk.StartChar, chunk.EndChar)
			}
			if chunk.Content != string(runes[chunk.StartChar:chunk.EndChar]) {
				t.Errorf("size=%d overlap=%d: chunk %d content does not match offsets", cfg.size, cfg.overlap, i)
			}
			if i > 0 {
				if chunk.StartChar != chunks[i-1].StartChar+step {
					t.Errorf("size=%d overlap=%d: chunk %d start %d, want %d", cfg.size, cfg.overlap, i, chunk.StartChar, chunks[i-1].StartChar+step)
				}
				if chunk.StartChar <= chunks[i-1].StartChar {
					t.Errorf("size=%d overlap=%d: chunk %d does not advance", cfg.size, cfg.overlap, i)
				}
			}
		}

		// Full coverage: first chunk starts at 0, last ends at the text end.
		if chunks[0].StartChar != 0 {
			t.Errorf("size=%d overlap=%d: first chunk starts at %d", cfg.size, cfg.overlap, chunks[0].StartChar)
		}
		if chunks[len(chunks)-1].EndChar != len(runes) {
			t.Errorf("size=%d overlap=%d: last chunk ends at %d, want %d", cfg.size, cfg.overlap, chunks[len(chunks)-1].EndChar, len(runes))
		}
	}
}

func assertChunksEqual(t *testing.T, got, want []ChunkInfo) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d chunks, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
