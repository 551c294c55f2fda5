package handlers

import (
	"net/http"

	"docsearch/internal/contextutil"
	"docsearch/internal/storage"
)

// StatsHandler handles HTTP requests for index statistics.
type StatsHandler struct {
	admin storage.AdminStore
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(admin storage.AdminStore) *StatsHandler {
	return &StatsHandler{admin: admin}
}

// ServeHTTP returns row counts and aggregates for the index.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.admin.Stats(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
