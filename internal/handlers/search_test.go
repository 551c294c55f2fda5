package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"docsearch/internal/search"
	"docsearch/internal/storage"
)

// stubEngine implements search.Engine for handler tests.
type stubEngine struct {
	results []search.Result
	err     error

	gotQuery string
	gotTopK  int
}

func (s *stubEngine) Search(ctx context.Context, query string, topK int) ([]search.Result, error) {
	s.gotQuery = query
	s.gotTopK = topK
	return s.results, s.err
}

func TestSearchHandler(t *testing.T) {
	engine := &stubEngine{
		results: []search.Result{
			{
				Chunk:      &storage.ChunkRecord{ChunkIndex: 2, Content: "relevant text", StartChar: 10, EndChar: 23},
				Document:   &storage.DocumentRecord{Path: "/docs/a.md", Name: "A"},
				Similarity: 0.91,
			},
		},
	}
	handler := NewSearchHandler(engine)

	body, _ := json.Marshal(SearchRequest{Query: "  find me  ", TopK: 3})
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if engine.gotQuery != "find me" {
		t.Errorf("engine query = %q, want trimmed %q", engine.gotQuery, "find me")
	}
	if engine.gotTopK != 3 {
		t.Errorf("engine topK = %d, want 3", engine.gotTopK)
	}

	var resp SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	res := resp.Results[0]
	if res.Path != "/docs/a.md" || res.ChunkIndex != 2 || res.Similarity != 0.91 {
		t.Errorf("result = %+v", res)
	}
}

func TestSearchHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		engineErr  error
		wantStatus int
	}{
		{"method not allowed", http.MethodGet, `{"query":"q"}`, nil, http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, `{"query":`, nil, http.StatusBadRequest},
		{"empty query", http.MethodPost, `{"query":"   "}`, nil, http.StatusBadRequest},
		{"engine failure", http.MethodPost, `{"query":"q"}`, errors.New("down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSearchHandler(&stubEngine{err: tt.engineErr})
			req := httptest.NewRequest(tt.method, "/api/search", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
