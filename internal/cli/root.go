package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the docsearch command tree.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docsearch",
		Short: "Semantic search over local document directories",
		Long: `docsearch indexes local text files into overlapping chunks, embeds them
through an OpenAI-compatible embeddings API, and answers semantic queries
by cosine similarity over the stored vectors.

Configuration comes from environment variables (or a .env file):

  DB_PATH                sqlite database file (default ./data/docsearch.db)
  CHUNK_SIZE             chunk window size in characters (default 1000)
  CHUNK_OVERLAP          overlap between chunks in characters (default 200)
  STREAM_THRESHOLD       file size in bytes at or above which files are
                         chunked via streaming (default 1 MiB, 0 streams all)
  EMBEDDING_BASE_URL     embeddings API base URL
  EMBEDDING_API_KEY      embeddings API key
  EMBEDDING_MODEL_NAME   embeddings model
  EMBEDDING_VECTOR_SIZE  vector size of the model (required)
  FILE_EXTENSIONS        comma-separated extensions to index
  IGNORE_PATTERNS        comma-separated directory/file patterns to skip
  MAX_FILE_SIZE          largest file to index, in bytes (default 10 MiB)
  API_PORT               serve port (default 9000)
  LOG_LEVEL              debug, info, warn, or error (default info)
  LOG_FORMAT             text or json (default text)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(IndexCmd())
	rootCmd.AddCommand(SearchCmd())
	rootCmd.AddCommand(StatsCmd())
	rootCmd.AddCommand(RemoveCmd())
	rootCmd.AddCommand(ClearCmd())
	rootCmd.AddCommand(ServeCmd())

	return rootCmd
}
