package storage

import (
	"context"
	"errors"
	"testing"
)

func TestChunkRepo_InsertBatch_OrderAndIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	doc := insertTestDocument(t, db, "/docs/chunks.md")

	repo := NewChunkRepo(db)
	chunks := []*ChunkRecord{
		{DocumentID: doc.ID, ChunkIndex: 0, Content: "abcd", StartChar: 0, EndChar: 4, TokenCount: 1},
		{DocumentID: doc.ID, ChunkIndex: 1, Content: "defg", StartChar: 3, EndChar: 7},
		{DocumentID: doc.ID, ChunkIndex: 2, Content: "ghij", StartChar: 6, EndChar: 10},
	}

	ids, err := repo.InsertBatch(ctx, chunks)
	if err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("InsertBatch() returned %d ids, want 3", len(ids))
	}
	for i, id := range ids {
		if id == "" {
			t.Fatalf("InsertBatch() id %d is empty", i)
		}
		if id != chunks[i].ID {
			t.Errorf("InsertBatch() id %d = %q, want %q (input order)", i, id, chunks[i].ID)
		}
	}

	listed, err := repo.ListByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("ListByDocument() returned %d chunks, want 3", len(listed))
	}
	for i, chunk := range listed {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d, want %d", i, chunk.ChunkIndex, i)
		}
		if chunk.ID != ids[i] {
			t.Errorf("chunk %d id = %q, want %q", i, chunk.ID, ids[i])
		}
	}
	if listed[0].TokenCount != 1 {
		t.Errorf("chunk 0 token count = %d, want 1", listed[0].TokenCount)
	}
	if listed[1].TokenCount != 0 {
		t.Errorf("chunk 1 token count = %d, want 0 (unset)", listed[1].TokenCount)
	}
}

func TestChunkRepo_InsertBatch_DuplicateIndex(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	doc := insertTestDocument(t, db, "/docs/dup.md")

	repo := NewChunkRepo(db)
	_, err := repo.InsertBatch(ctx, []*ChunkRecord{
		{DocumentID: doc.ID, ChunkIndex: 0, Content: "a", StartChar: 0, EndChar: 1},
		{DocumentID: doc.ID, ChunkIndex: 0, Content: "b", StartChar: 0, EndChar: 1},
	})
	if err == nil {
		t.Fatal("InsertBatch() expected unique (document_id, chunk_index) violation")
	}
}

func TestChunkRepo_InsertBatch_MissingDocument(t *testing.T) {
	db := newTestDB(t)
	repo := NewChunkRepo(db)
	_, err := repo.InsertBatch(context.Background(), []*ChunkRecord{
		{DocumentID: "no-such-doc", ChunkIndex: 0, Content: "a", StartChar: 0, EndChar: 1},
	})
	if err == nil {
		t.Fatal("InsertBatch() expected foreign key violation for missing document")
	}
}

func TestChunkRepo_GetWithDocument(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	doc := insertTestDocument(t, db, "/docs/join.md")

	repo := NewChunkRepo(db)
	ids, err := repo.InsertBatch(ctx, []*ChunkRecord{
		{DocumentID: doc.ID, ChunkIndex: 0, Content: "joined text", StartChar: 0, EndChar: 11},
	})
	if err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	chunk, gotDoc, err := repo.GetWithDocument(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetWithDocument() error = %v", err)
	}
	if chunk.Content != "joined text" || chunk.DocumentID != doc.ID {
		t.Errorf("GetWithDocument() chunk = %+v", chunk)
	}
	if gotDoc.ID != doc.ID || gotDoc.Path != "/docs/join.md" {
		t.Errorf("GetWithDocument() document = %+v", gotDoc)
	}

	if _, _, err := repo.GetWithDocument(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetWithDocument() for missing chunk error = %v, want ErrNotFound", err)
	}
}
