// Package cli contains the cobra commands and the shared wiring they run on.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"docsearch/internal/chunker"
	"docsearch/internal/config"
	"docsearch/internal/indexer"
	"docsearch/internal/llm"
	"docsearch/internal/scanner"
	"docsearch/internal/search"
	"docsearch/internal/storage"
)

// App bundles the wired components every command runs against.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Pipeline *indexer.Pipeline
	Engine   search.Engine
	Admin    storage.AdminStore
}

// newApp loads configuration, configures logging, opens the database, and
// wires the pipeline and search engine.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	ch, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
	sc := scanner.New(cfg.FileExtensions, cfg.IgnorePatterns, cfg.MaxFileSize)
	documents := storage.NewDocumentRepo(db)
	pipeline := indexer.NewPipeline(sc, documents, embedder, storage.NewTxRunner(db), ch, cfg.StreamThreshold)
	engine := search.NewEngine(embedder, storage.NewEmbeddingRepo(db), storage.NewChunkRepo(db))

	return &App{
		Config:   cfg,
		DB:       db,
		Pipeline: pipeline,
		Engine:   engine,
		Admin:    storage.NewAdminRepo(db),
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	_ = a.DB.Close()
}

// setupLogger installs the default slog handler per the configured level and
// format. Logs go to stderr so command output stays parseable.
func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
