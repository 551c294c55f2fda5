package storage

import (
	"context"
	"fmt"
)

// AdminStore defines aggregate operations over the whole index.
type AdminStore interface {
	// Stats returns row counts and aggregates per entity kind.
	Stats(ctx context.Context) (*Stats, error)
	// ClearAll removes every document, chunk, and embedding.
	ClearAll(ctx context.Context) error
}

// AdminRepo provides aggregate operations over the whole index.
// It implements the AdminStore interface.
type AdminRepo struct {
	db DBTX
}

// NewAdminRepo creates a new AdminRepo.
func NewAdminRepo(db DBTX) *AdminRepo {
	return &AdminRepo{db: db}
}

// Stats returns row counts per entity kind plus content aggregates.
func (r *AdminRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByFileType: make(map[string]int)}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM documents", &stats.Documents},
		{"SELECT COUNT(*) FROM chunks", &stats.Chunks},
		{"SELECT COUNT(*) FROM embeddings", &stats.Embeddings},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(size), 0) FROM documents").Scan(&stats.ContentBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to sum document sizes: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT file_type, COUNT(*) FROM documents GROUP BY file_type")
	if err != nil {
		return nil, fmt.Errorf("failed to group documents by type: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var fileType string
		var count int
		if err := rows.Scan(&fileType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		stats.ByFileType[fileType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stats, nil
}

// ClearAll removes every document; chunks and embeddings cascade.
func (r *AdminRepo) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	return nil
}
