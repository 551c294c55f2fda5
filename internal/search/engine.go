package search

import (
	"context"
	"fmt"
	"sort"

	"docsearch/internal/contextutil"
	"docsearch/internal/llm"
	"docsearch/internal/storage"
)

const (
	// DefaultTopK is used when a query does not specify a result count.
	DefaultTopK = 5
	// MaxTopK caps the result count for a single query.
	MaxTopK = 100
)

// Result is one ranked hit joined with its chunk and document metadata.
type Result struct {
	Chunk      *storage.ChunkRecord
	Document   *storage.DocumentRecord
	Similarity float64
}

// Engine answers semantic queries over the stored embeddings.
type Engine interface {
	// Search embeds the query, ranks every stored chunk by cosine
	// similarity, and returns the top K results in descending order.
	Search(ctx context.Context, query string, topK int) ([]Result, error)
}

// engine implements Engine with a brute-force linear scan. Each query costs
// O(corpus size x dimension); no index structure is maintained.
type engine struct {
	embedder llm.Embedder
	vectors  storage.EmbeddingStore
	chunks   storage.ChunkStore
}

// NewEngine creates a search engine over the given stores.
func NewEngine(embedder llm.Embedder, vectors storage.EmbeddingStore, chunks storage.ChunkStore) Engine {
	return &engine{
		embedder: embedder,
		vectors:  vectors,
		chunks:   chunks,
	}
}

// scored pairs a chunk ID with its similarity during ranking.
type scored struct {
	chunkID    string
	similarity float64
}

// Search embeds the query and scans all stored vectors.
// Any failure (embedding service, storage) aborts the whole query.
func (e *engine) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	queryVector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	stored, err := e.vectors.AllVectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored vectors: %w", err)
	}

	scores := make([]scored, 0, len(stored))
	for _, sv := range stored {
		sim, err := CosineSimilarity(queryVector, sv.Vector)
		if err != nil {
			return nil, fmt.Errorf("failed to score chunk %s: %w", sv.ChunkID, err)
		}
		scores = append(scores, scored{chunkID: sv.ChunkID, similarity: sim})
	}

	// Descending by similarity; ties break by chunk ID so results are
	// reproducible across runs.
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].similarity != scores[j].similarity {
			return scores[i].similarity > scores[j].similarity
		}
		return scores[i].chunkID < scores[j].chunkID
	})

	if len(scores) > topK {
		scores = scores[:topK]
	}

	results := make([]Result, 0, len(scores))
	for _, s := range scores {
		chunk, doc, err := e.chunks.GetWithDocument(ctx, s.chunkID)
		if err != nil {
			return nil, fmt.Errorf("failed to load chunk %s: %w", s.chunkID, err)
		}
		results = append(results, Result{
			Chunk:      chunk,
			Document:   doc,
			Similarity: s.similarity,
		})
	}

	logger.DebugContext(ctx, "search completed",
		"query_len", len(query),
		"corpus", len(stored),
		"results", len(results),
	)
	return results, nil
}
