package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks docsearch/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// InsertBatch inserts chunks and returns their IDs in input order.
	// Missing IDs are generated.
	InsertBatch(ctx context.Context, chunks []*ChunkRecord) ([]string, error)
	// ListByDocument returns all chunks for a document, ordered by chunk_index.
	ListByDocument(ctx context.Context, documentID string) ([]*ChunkRecord, error)
	// GetWithDocument gets a chunk and its owning document by chunk ID.
	// Returns ErrNotFound if the chunk does not exist.
	GetWithDocument(ctx context.Context, chunkID string) (*ChunkRecord, *DocumentRecord, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db DBTX
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db DBTX) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// InsertBatch inserts chunks and returns their IDs in input order.
// The caller is expected to run this inside a transaction when the batch
// must be atomic with other writes.
func (r *ChunkRepo) InsertBatch(ctx context.Context, chunks []*ChunkRecord) ([]string, error) {
	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}
		ids[i] = chunk.ID

		var tokenCount any
		if chunk.TokenCount > 0 {
			tokenCount = chunk.TokenCount
		}

		_, err := r.db.ExecContext(ctx,
			`INSERT INTO chunks (id, document_id, chunk_index, content, start_char, end_char, token_count, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			chunk.ID, chunk.DocumentID, chunk.ChunkIndex, chunk.Content, chunk.StartChar, chunk.EndChar, tokenCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert chunk %d: %w", chunk.ChunkIndex, err)
		}
	}
	return ids, nil
}

// ListByDocument returns all chunks for a document, ordered by chunk_index.
// Returns an empty slice if no chunks exist (not an error).
func (r *ChunkRepo) ListByDocument(ctx context.Context, documentID string) ([]*ChunkRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, document_id, chunk_index, content, start_char, end_char, COALESCE(token_count, 0), created_at
		 FROM chunks WHERE document_id = ? ORDER BY chunk_index`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []*ChunkRecord
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return chunks, nil
}

// GetWithDocument gets a chunk and its owning document in one query.
// Returns ErrNotFound if the chunk does not exist.
func (r *ChunkRepo) GetWithDocument(ctx context.Context, chunkID string) (*ChunkRecord, *DocumentRecord, error) {
	var chunk ChunkRecord
	var doc DocumentRecord
	var chunkCreatedAt, docIndexedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT c.id, c.document_id, c.chunk_index, c.content, c.start_char, c.end_char, COALESCE(c.token_count, 0), c.created_at,
		        d.id, d.path, d.name, d.size, d.mtime, d.hash, d.file_type, d.indexed_at
		 FROM chunks c
		 JOIN documents d ON d.id = c.document_id
		 WHERE c.id = ?`,
		chunkID,
	).Scan(
		&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &chunk.StartChar, &chunk.EndChar, &chunk.TokenCount, &chunkCreatedAt,
		&doc.ID, &doc.Path, &doc.Name, &doc.Size, &doc.ModTime, &doc.Hash, &doc.FileType, &docIndexedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query chunk with document: %w", err)
	}

	if chunk.CreatedAt, err = parseTimestamp(chunkCreatedAt); err != nil {
		return nil, nil, err
	}
	if doc.IndexedAt, err = parseTimestamp(docIndexedAt); err != nil {
		return nil, nil, err
	}
	return &chunk, &doc, nil
}

func scanChunk(row rowScanner) (*ChunkRecord, error) {
	var chunk ChunkRecord
	var createdAtStr string

	err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content,
		&chunk.StartChar, &chunk.EndChar, &chunk.TokenCount, &createdAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunk: %w", err)
	}

	chunk.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}
