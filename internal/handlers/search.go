package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"docsearch/internal/contextutil"
	"docsearch/internal/search"
)

// SearchHandler handles HTTP requests for semantic queries.
type SearchHandler struct {
	engine search.Engine
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine search.Engine) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// SearchRequest represents the HTTP request payload for queries.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// SearchResult is one ranked hit in the response.
type SearchResult struct {
	Path       string  `json:"path"`
	Name       string  `json:"name"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	StartChar  int     `json:"start_char"`
	EndChar    int     `json:"end_char"`
	Similarity float64 `json:"similarity"`
}

// SearchResponse represents the HTTP response payload for queries.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// ServeHTTP handles HTTP requests for semantic queries.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := h.engine.Search(ctx, req.Query, req.TopK)
	if err != nil {
		logger.ErrorContext(ctx, "search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	resp := SearchResponse{
		Query:   req.Query,
		Results: make([]SearchResult, 0, len(results)),
	}
	for _, res := range results {
		resp.Results = append(resp.Results, SearchResult{
			Path:       res.Document.Path,
			Name:       res.Document.Name,
			ChunkIndex: res.Chunk.ChunkIndex,
			Content:    res.Chunk.Content,
			StartChar:  res.Chunk.StartChar,
			EndChar:    res.Chunk.EndChar,
			Similarity: res.Similarity,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
