package handlers

import (
	"errors"
	"net/http"

	"docsearch/internal/contextutil"
	"docsearch/internal/indexer"
	"docsearch/internal/storage"
)

// DocumentsHandler handles HTTP requests for individual documents.
type DocumentsHandler struct {
	pipeline *indexer.Pipeline
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(pipeline *indexer.Pipeline) *DocumentsHandler {
	return &DocumentsHandler{pipeline: pipeline}
}

// RemoveResponse represents the response for a document removal.
type RemoveResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// ServeHTTP removes the document for the path named in the ?path query
// parameter; chunks and embeddings go with it.
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	if err := h.pipeline.RemoveDocument(ctx, path); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No document indexed for that path")
			return
		}
		logger.ErrorContext(ctx, "failed to remove document", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to remove document")
		return
	}

	logger.InfoContext(ctx, "removed document", "path", path)
	writeJSON(w, http.StatusOK, RemoveResponse{Message: "Document removed", Path: path})
}
