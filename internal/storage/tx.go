package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Documents  *DocumentRepo
	Chunks     *ChunkRepo
	Embeddings *EmbeddingRepo
}

// TxRunner runs a function against transactional repositories. All writes
// made through the repositories commit together or roll back together, so a
// file's document, chunks, and embeddings are persisted as one unit.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(Repos) error) error
}

// SQLTxRunner implements TxRunner on a database/sql handle.
type SQLTxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a SQLTxRunner.
func NewTxRunner(db *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

// WithTx begins a transaction, runs fn with repositories bound to it, and
// commits. Any error from fn rolls the transaction back and is returned.
func (r *SQLTxRunner) WithTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	repos := Repos{
		Documents:  NewDocumentRepo(tx),
		Chunks:     NewChunkRepo(tx),
		Embeddings: NewEmbeddingRepo(tx),
	}
	if err := fn(repos); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
