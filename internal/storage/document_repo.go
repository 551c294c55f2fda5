package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docsearch/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// GetByPath gets a document by its file path.
	// Returns nil and ErrNotFound if not found.
	GetByPath(ctx context.Context, path string) (*DocumentRecord, error)
	// Insert inserts a new document. A missing ID is generated.
	Insert(ctx context.Context, doc *DocumentRecord) error
	// Delete removes a document by ID; chunks and embeddings cascade.
	// Returns ErrNotFound if no such document exists.
	Delete(ctx context.Context, id string) error
	// ListAll returns every document ordered by path.
	ListAll(ctx context.Context) ([]*DocumentRecord, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db DBTX
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db DBTX) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByPath gets a document by its file path.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByPath(ctx context.Context, path string) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, path, name, size, mtime, hash, file_type, indexed_at FROM documents WHERE path = ?",
		path,
	)
	return scanDocument(row)
}

// Insert inserts a new document. A missing ID is generated.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, path, name, size, mtime, hash, file_type, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		doc.ID, doc.Path, doc.Name, doc.Size, doc.ModTime, doc.Hash, doc.FileType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// Delete removes a document by ID. Foreign-key cascades remove the
// document's chunks and their embeddings in the same statement.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every document ordered by path.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, path, name, size, mtime, hash, file_type, indexed_at FROM documents ORDER BY path",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanDocument.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*DocumentRecord, error) {
	var doc DocumentRecord
	var indexedAtStr string

	err := row.Scan(&doc.ID, &doc.Path, &doc.Name, &doc.Size, &doc.ModTime, &doc.Hash, &doc.FileType, &indexedAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.IndexedAt, err = parseTimestamp(indexedAtStr)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
