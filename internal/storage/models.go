package storage

import "time"

// DocumentRecord represents an indexed file in the database.
// At most one live document exists per path.
type DocumentRecord struct {
	ID        string    // UUID
	Path      string    // Absolute file path, unique
	Name      string    // Display name (extracted title or filename)
	Size      int64     // File size in bytes at index time
	ModTime   int64     // File mtime at index time, Unix seconds
	Hash      string    // SHA-256 hex digest of file content
	FileType  string    // Extension tag, e.g. ".md"
	IndexedAt time.Time // When the document was (re)indexed
}

// ChunkRecord represents one window of a document's text.
// Deleting the owning document cascades to its chunks.
type ChunkRecord struct {
	ID         string // UUID
	DocumentID string // Foreign key to documents.id
	ChunkIndex int    // 0-based index within the document, unique per document
	Content    string // Chunk text
	StartChar  int    // Rune offset of the first character
	EndChar    int    // Rune offset past the last character
	TokenCount int    // Estimated token count (0 if not recorded)
	CreatedAt  time.Time
}

// EmbeddingRecord represents the vector for one chunk.
// Deleting the owning chunk cascades to its embedding.
type EmbeddingRecord struct {
	ID        string    // UUID
	ChunkID   string    // Foreign key to chunks.id, unique
	Vector    []float32 // Fixed-dimension embedding vector
	Model     string    // Model identifier that produced the vector
	Dimension int       // Vector length, equals len(Vector)
	CreatedAt time.Time
}

// StoredVector pairs a chunk ID with its embedding vector for the search scan.
type StoredVector struct {
	ChunkID string
	Vector  []float32
}

// Stats reports row counts and aggregates for the index.
type Stats struct {
	Documents    int            `json:"documents"`
	Chunks       int            `json:"chunks"`
	Embeddings   int            `json:"embeddings"`
	ContentBytes int64          `json:"content_bytes"`
	ByFileType   map[string]int `json:"by_file_type,omitempty"`
}
