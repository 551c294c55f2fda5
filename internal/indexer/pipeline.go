// Package indexer orchestrates scanning, chunking, embedding, and storage
// into the document indexing pipeline.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"docsearch/internal/chunker"
	"docsearch/internal/contextutil"
	"docsearch/internal/llm"
	"docsearch/internal/scanner"
	"docsearch/internal/storage"
)

const (
	// embedBatchSize is how many chunk texts go into one embeddings request.
	embedBatchSize = 16
	// embedConcurrency caps in-flight embeddings requests per file.
	embedConcurrency = 4
	// titleScanLimit bounds how much of a streamed file is read for title
	// extraction.
	titleScanLimit = 32 * 1024
)

// Summary reports the outcome of a directory indexing run.
type Summary struct {
	Total   int          `json:"total"`
	Indexed int          `json:"indexed"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
	Errors  []*FileError `json:"-"`
}

// Pipeline indexes files: change detection by content hash, overlapping
// chunking, embedding generation, and transactional persistence.
type Pipeline struct {
	scanner         *scanner.Scanner
	documents       storage.DocumentStore
	embedder        llm.Embedder
	tx              storage.TxRunner
	chunker         *chunker.Chunker
	streamThreshold int64
}

// NewPipeline creates a new indexing pipeline. Files of streamThreshold bytes
// or more are chunked through the streaming reader instead of being loaded
// whole; a threshold of zero streams every file.
func NewPipeline(
	sc *scanner.Scanner,
	documents storage.DocumentStore,
	embedder llm.Embedder,
	tx storage.TxRunner,
	ch *chunker.Chunker,
	streamThreshold int64,
) *Pipeline {
	return &Pipeline{
		scanner:         sc,
		documents:       documents,
		embedder:        embedder,
		tx:              tx,
		chunker:         ch,
		streamThreshold: streamThreshold,
	}
}

// IndexDirectory scans root and indexes every eligible file. A failure on one
// file is recorded in the summary and the run continues; only context
// cancellation aborts the run early. onProgress, if non-nil, is called after
// every file with the number processed so far and the total.
func (p *Pipeline) IndexDirectory(ctx context.Context, root string, onProgress func(processed, total int)) (*Summary, error) {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := p.scanner.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	summary := &Summary{Total: len(files)}
	for i, f := range files {
		changed, err := p.IndexFile(ctx, f)
		switch {
		case err != nil && ctx.Err() != nil:
			return summary, err
		case err != nil:
			summary.Failed++
			summary.Errors = append(summary.Errors, &FileError{Path: f.Path, Err: err})
			logger.ErrorContext(ctx, "failed to index file", "path", f.Path, "error", err)
		case changed:
			summary.Indexed++
		default:
			summary.Skipped++
		}

		if onProgress != nil {
			onProgress(i+1, len(files))
		}
	}

	logger.InfoContext(ctx, "indexing run completed",
		"total", summary.Total,
		"indexed", summary.Indexed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

// IndexFile indexes a single file. It reports false without touching storage
// when the stored document for the same path has a matching content hash and
// mtime. Otherwise the old document (if any), its chunks, and its embeddings
// are replaced in one transaction, so readers never observe a partial
// replacement.
func (p *Pipeline) IndexFile(ctx context.Context, f scanner.File) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)
	stream := f.Size >= p.streamThreshold

	var (
		hash    string
		content []byte
		err     error
	)
	if stream {
		hash, err = HashFile(f.Path)
	} else {
		content, err = os.ReadFile(f.Path)
		if err == nil {
			hash = HashBytes(content)
		}
	}
	if err != nil {
		return false, err
	}

	existing, err := p.documents.GetByPath(ctx, f.Path)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("failed to look up document: %w", err)
	}
	if existing != nil && existing.Hash == hash && existing.ModTime == f.ModTime {
		logger.DebugContext(ctx, "skipping unchanged file", "path", f.Path, "hash", hash)
		return false, nil
	}

	var chunks []chunker.ChunkInfo
	if stream {
		chunks, err = p.chunkFromFile(f.Path)
	} else {
		chunks = p.chunker.Chunk(string(content))
	}
	if err != nil {
		return false, err
	}

	head := content
	if stream && f.Ext == ".md" {
		head, err = readPrefix(f.Path, titleScanLimit)
		if err != nil {
			return false, err
		}
	}

	vectors, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return false, fmt.Errorf("failed to embed chunks: %w", err)
	}

	doc := &storage.DocumentRecord{
		Path:     f.Path,
		Name:     DisplayName(f.Name, f.Ext, head),
		Size:     f.Size,
		ModTime:  f.ModTime,
		Hash:     hash,
		FileType: f.Ext,
	}

	err = p.tx.WithTx(ctx, func(r storage.Repos) error {
		if existing != nil {
			if err := r.Documents.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to delete previous document: %w", err)
			}
		}
		if err := r.Documents.Insert(ctx, doc); err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}

		records := make([]*storage.ChunkRecord, len(chunks))
		for i, c := range chunks {
			records[i] = &storage.ChunkRecord{
				DocumentID: doc.ID,
				ChunkIndex: c.Index,
				Content:    c.Content,
				StartChar:  c.StartChar,
				EndChar:    c.EndChar,
				TokenCount: estimateTokens(c.Content),
			}
		}
		chunkIDs, err := r.Chunks.InsertBatch(ctx, records)
		if err != nil {
			return err
		}

		embeddings := make([]*storage.EmbeddingRecord, len(chunkIDs))
		for i, id := range chunkIDs {
			embeddings[i] = &storage.EmbeddingRecord{
				ChunkID:   id,
				Vector:    vectors[i],
				Model:     p.embedder.Model(),
				Dimension: len(vectors[i]),
			}
		}
		return r.Embeddings.InsertBatch(ctx, embeddings)
	})
	if err != nil {
		return false, err
	}

	logger.DebugContext(ctx, "indexed file", "path", f.Path, "chunks", len(chunks), "streamed", stream)
	return true, nil
}

// RemoveDocument deletes the document stored for path, cascading to its
// chunks and embeddings. Returns storage.ErrNotFound when no document exists
// for the path.
func (p *Pipeline) RemoveDocument(ctx context.Context, path string) error {
	doc, err := p.documents.GetByPath(ctx, path)
	if err != nil {
		return err
	}
	return p.documents.Delete(ctx, doc.ID)
}

// chunkFromFile runs the streaming chunker over the file at path.
func (p *Pipeline) chunkFromFile(path string) ([]chunker.ChunkInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	chunks, err := p.chunker.ChunkAllStream(f)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk %s: %w", path, err)
	}
	return chunks, nil
}

// embedChunks generates one vector per chunk, in chunk order. Chunks are
// embedded in batches with bounded concurrency; any batch failure fails the
// whole file.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []chunker.ChunkInfo) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		start, end := start, end
		g.Go(func() error {
			texts := make([]string, end-start)
			for i, c := range chunks[start:end] {
				texts[i] = c.Content
			}

			batch, err := p.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				return err
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// estimateTokens approximates the token count of text. Four characters per
// token is a rough average for English prose.
func estimateTokens(text string) int {
	n := utf8.RuneCountInString(text) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// readPrefix reads up to limit bytes from the start of the file at path.
func readPrefix(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	head, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return head, nil
}
