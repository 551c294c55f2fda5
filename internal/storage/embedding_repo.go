package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedding_store.go -package=mocks docsearch/internal/storage EmbeddingStore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EmbeddingStore defines the interface for embedding storage operations.
type EmbeddingStore interface {
	// InsertBatch inserts one embedding per record. Missing IDs are generated.
	InsertBatch(ctx context.Context, embeddings []*EmbeddingRecord) error
	// AllVectors returns every stored (chunkID, vector) pair, ordered by
	// chunk ID for deterministic iteration.
	AllVectors(ctx context.Context) ([]StoredVector, error)
}

// EmbeddingRepo provides methods for embedding operations.
// It implements the EmbeddingStore interface.
type EmbeddingRepo struct {
	db DBTX
}

// NewEmbeddingRepo creates a new EmbeddingRepo.
func NewEmbeddingRepo(db DBTX) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

// InsertBatch inserts one embedding per record.
// Each record must reference an existing chunk; at most one embedding may
// exist per chunk (enforced by the unique constraint on chunk_id).
func (r *EmbeddingRepo) InsertBatch(ctx context.Context, embeddings []*EmbeddingRecord) error {
	for i, emb := range embeddings {
		if emb.ID == "" {
			emb.ID = uuid.New().String()
		}
		if emb.Dimension != len(emb.Vector) {
			return fmt.Errorf("embedding %d dimension %d does not match vector length %d", i, emb.Dimension, len(emb.Vector))
		}

		_, err := r.db.ExecContext(ctx,
			`INSERT INTO embeddings (id, chunk_id, vector, model, dimension, created_at)
			 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			emb.ID, emb.ChunkID, EncodeVector(emb.Vector), emb.Model, emb.Dimension,
		)
		if err != nil {
			return fmt.Errorf("failed to insert embedding for chunk %s: %w", emb.ChunkID, err)
		}
	}
	return nil
}

// AllVectors returns every stored (chunkID, vector) pair.
// This is the read side of the brute-force search scan.
func (r *EmbeddingRepo) AllVectors(ctx context.Context) ([]StoredVector, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT chunk_id, vector FROM embeddings ORDER BY chunk_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var vectors []StoredVector
	for rows.Next() {
		var chunkID string
		var blob []byte
		if err := rows.Scan(&chunkID, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}
		vector, err := DecodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("corrupt vector for chunk %s: %w", chunkID, err)
		}
		vectors = append(vectors, StoredVector{ChunkID: chunkID, Vector: vector})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return vectors, nil
}
