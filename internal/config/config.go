package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath              string
	ChunkSize           int   // Chunk window size in characters
	ChunkOverlap        int   // Overlap between consecutive chunks in characters
	StreamThreshold     int64 // File size in bytes at or above which streaming chunking is used (0 = always stream)
	EmbeddingBaseURL    string
	EmbeddingAPIKey     string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	FileExtensions      []string
	IgnorePatterns      []string
	MaxFileSize         int64
	APIPort             string
	LogLevel            slog.Level
	LogFormat           string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels looking for a .env next to the project root
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:             getEnv("DB_PATH", "./data/docsearch.db"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		APIPort:            getEnv("API_PORT", "9000"),
		FileExtensions:     splitList(getEnv("FILE_EXTENSIONS", ".md,.txt,.go,.py,.js,.ts,.java,.rs,.c,.h,.sh,.yaml,.yml,.json,.toml")),
		IgnorePatterns:     splitList(getEnv("IGNORE_PATTERNS", ".git,node_modules,vendor,.obsidian")),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 200); err != nil {
		return nil, err
	}
	if cfg.StreamThreshold, err = getEnvInt64("STREAM_THRESHOLD", 1<<20); err != nil {
		return nil, err
	}
	if cfg.MaxFileSize, err = getEnvInt64("MAX_FILE_SIZE", 10<<20); err != nil {
		return nil, err
	}
	if cfg.EmbeddingVectorSize, err = getEnvInt("EMBEDDING_VECTOR_SIZE", 0); err != nil {
		return nil, err
	}

	// Note: EMBEDDING_VECTOR_SIZE must match the output vector size of the
	// embeddings model. If it changes, the index must be rebuilt.
	if cfg.EmbeddingVectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE is required and must be greater than 0")
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if cfg.ChunkOverlap < 0 {
		return nil, fmt.Errorf("CHUNK_OVERLAP must not be negative")
	}
	if cfg.StreamThreshold < 0 {
		return nil, fmt.Errorf("STREAM_THRESHOLD must not be negative")
	}
	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_FILE_SIZE must be greater than 0")
	}

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	// Create the data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// getEnvInt64 gets a 64-bit integer environment variable or returns a default value.
func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// splitList splits a comma-separated list, trimming whitespace and dropping empties.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", level)
	}
}
