package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// StatsCmd creates the stats command.
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runStats(cmd, outputJSON)
		},
	}
}

func runStats(cmd *cobra.Command, outputJSON bool) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	stats, err := app.Admin.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	if outputJSON {
		out, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Documents:     %d\n", stats.Documents)
	fmt.Printf("Chunks:        %d\n", stats.Chunks)
	fmt.Printf("Embeddings:    %d\n", stats.Embeddings)
	fmt.Printf("Content bytes: %d\n", stats.ContentBytes)
	if len(stats.ByFileType) > 0 {
		fmt.Println("By file type:")
		types := make([]string, 0, len(stats.ByFileType))
		for t := range stats.ByFileType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %-8s %d\n", t, stats.ByFileType[t])
		}
	}
	return nil
}
