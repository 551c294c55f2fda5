package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docsearch/internal/search"
)

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the indexed documents",
		Long:  "Embeds the query and returns the most similar chunks with their source files.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runSearch(cmd, args[0], topK, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "n", search.DefaultTopK, "Maximum number of results")

	return cmd
}

// searchResult is the JSON shape of one CLI search hit.
type searchResult struct {
	Path       string  `json:"path"`
	Name       string  `json:"name"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content"`
}

func runSearch(cmd *cobra.Command, query string, topK int, outputJSON bool) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	results, err := app.Engine.Search(cmd.Context(), query, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if outputJSON {
		out := make([]searchResult, 0, len(results))
		for _, res := range results {
			out = append(out, searchResult{
				Path:       res.Document.Path,
				Name:       res.Document.Name,
				ChunkIndex: res.Chunk.ChunkIndex,
				Similarity: res.Similarity,
				Content:    res.Chunk.Content,
			})
		}
		encoded, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(encoded))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, res := range results {
		fmt.Printf("%d. %s (%s, chunk %d, score %.4f)\n",
			i+1, res.Document.Name, res.Document.Path, res.Chunk.ChunkIndex, res.Similarity)
		fmt.Printf("   %s\n", snippet(res.Chunk.Content, 200))
	}
	return nil
}

// snippet collapses whitespace and truncates text for one-line display.
func snippet(text string, limit int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return string(runes[:limit]) + "..."
}
