package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"docsearch/internal/contextutil"
	"docsearch/internal/indexer"
	"docsearch/internal/storage"
)

// IndexHandler handles HTTP requests for triggering indexing runs.
type IndexHandler struct {
	pipeline    *indexer.Pipeline
	admin       storage.AdminStore
	defaultRoot string
}

// NewIndexHandler creates a new IndexHandler. defaultRoot is indexed when a
// request does not name a root of its own.
func NewIndexHandler(pipeline *indexer.Pipeline, admin storage.AdminStore, defaultRoot string) *IndexHandler {
	return &IndexHandler{
		pipeline:    pipeline,
		admin:       admin,
		defaultRoot: defaultRoot,
	}
}

// IndexRequest represents the request payload for the index endpoint.
type IndexRequest struct {
	Root string `json:"root,omitempty"`
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Root    string `json:"root"`
}

// ServeHTTP triggers an indexing run. The run happens in the background; the
// response is returned as soon as the run is accepted. With ?force=true all
// existing data is cleared first, so every file is re-embedded.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	root := req.Root
	if root == "" {
		root = h.defaultRoot
	}
	if root == "" {
		writeError(w, http.StatusBadRequest, "root is required")
		return
	}

	force := r.URL.Query().Get("force") == "true"
	logger.InfoContext(ctx, "indexing triggered via API", "root", root, "force", force)

	// Indexing can take a long time; run it in the background with a fresh
	// context so it survives the HTTP request.
	go func() {
		indexCtx := contextutil.WithLogger(context.Background(), logger)
		if force {
			if err := h.admin.ClearAll(indexCtx); err != nil {
				logger.Error("failed to clear existing data", "error", err)
				return
			}
			logger.Info("cleared all existing indexed data")
		}
		summary, err := h.pipeline.IndexDirectory(indexCtx, root, nil)
		if err != nil {
			logger.Error("indexing run failed", "root", root, "error", err)
			return
		}
		if summary.Failed > 0 {
			logger.Warn("indexing run completed with errors",
				"root", root, "indexed", summary.Indexed, "failed", summary.Failed)
		}
	}()

	message := "Indexing started. Check server logs for progress."
	if force {
		message = "Force re-indexing started (all existing data cleared). Check server logs for progress."
	}
	writeJSON(w, http.StatusAccepted, IndexResponse{
		Message: message,
		Status:  "accepted",
		Root:    root,
	})
}
