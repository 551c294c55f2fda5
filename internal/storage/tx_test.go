package storage

import (
	"context"
	"errors"
	"testing"
)

func TestTxRunner_Commit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	runner := NewTxRunner(db)

	err := runner.WithTx(ctx, func(repos Repos) error {
		doc := &DocumentRecord{Path: "/tx/commit.md", Name: "c", Hash: "h", FileType: ".md"}
		if err := repos.Documents.Insert(ctx, doc); err != nil {
			return err
		}
		ids, err := repos.Chunks.InsertBatch(ctx, []*ChunkRecord{
			{DocumentID: doc.ID, ChunkIndex: 0, Content: "x", StartChar: 0, EndChar: 1},
		})
		if err != nil {
			return err
		}
		return repos.Embeddings.InsertBatch(ctx, []*EmbeddingRecord{
			{ChunkID: ids[0], Vector: []float32{1}, Model: "m", Dimension: 1},
		})
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	stats, err := NewAdminRepo(db).Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Documents != 1 || stats.Chunks != 1 || stats.Embeddings != 1 {
		t.Errorf("after commit Stats() = %+v, want 1/1/1", stats)
	}
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	runner := NewTxRunner(db)

	failure := errors.New("persist failed")
	err := runner.WithTx(ctx, func(repos Repos) error {
		doc := &DocumentRecord{Path: "/tx/rollback.md", Name: "r", Hash: "h", FileType: ".md"}
		if err := repos.Documents.Insert(ctx, doc); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("WithTx() error = %v, want %v", err, failure)
	}

	// Nothing from the failed transaction may be observable
	if _, err := NewDocumentRepo(db).GetByPath(ctx, "/tx/rollback.md"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByPath() after rollback error = %v, want ErrNotFound", err)
	}
}

func TestTxRunner_DeleteThenInsertIsAtomic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	runner := NewTxRunner(db)

	old := insertTestDocument(t, db, "/tx/replace.md")

	// A failing replacement must leave the old row intact
	failure := errors.New("embed failed")
	err := runner.WithTx(ctx, func(repos Repos) error {
		if err := repos.Documents.Delete(ctx, old.ID); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("WithTx() error = %v, want %v", err, failure)
	}

	got, err := NewDocumentRepo(db).GetByPath(ctx, "/tx/replace.md")
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}
	if got.ID != old.ID {
		t.Errorf("document id = %q, want original %q", got.ID, old.ID)
	}
}

func TestAdminRepo_StatsAndClearAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	doc := insertTestDocument(t, db, "/docs/stats.md")
	other := &DocumentRecord{Path: "/docs/code.go", Name: "code", Size: 10, Hash: "h2", FileType: ".go"}
	if err := NewDocumentRepo(db).Insert(ctx, other); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	ids, err := NewChunkRepo(db).InsertBatch(ctx, []*ChunkRecord{
		{DocumentID: doc.ID, ChunkIndex: 0, Content: "a", StartChar: 0, EndChar: 1},
	})
	if err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}
	err = NewEmbeddingRepo(db).InsertBatch(ctx, []*EmbeddingRecord{
		{ChunkID: ids[0], Vector: []float32{1}, Model: "m", Dimension: 1},
	})
	if err != nil {
		t.Fatalf("InsertBatch() embeddings error = %v", err)
	}

	admin := NewAdminRepo(db)
	stats, err := admin.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Documents != 2 || stats.Chunks != 1 || stats.Embeddings != 1 {
		t.Errorf("Stats() = %+v, want 2 documents, 1 chunk, 1 embedding", stats)
	}
	if stats.ContentBytes != 52 {
		t.Errorf("Stats() ContentBytes = %d, want 52", stats.ContentBytes)
	}
	if stats.ByFileType[".md"] != 1 || stats.ByFileType[".go"] != 1 {
		t.Errorf("Stats() ByFileType = %v", stats.ByFileType)
	}

	if err := admin.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	stats, err = admin.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() after clear error = %v", err)
	}
	if stats.Documents != 0 || stats.Chunks != 0 || stats.Embeddings != 0 {
		t.Errorf("Stats() after ClearAll = %+v, want all zero", stats)
	}
}
