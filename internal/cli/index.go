package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

// IndexCmd creates the index command.
func IndexCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index <directory>",
		Short: "Index a directory of documents",
		Long: `Scans the directory recursively and indexes every eligible file.
Files whose content and mtime are unchanged since the last run are skipped.
With --force all previously indexed data is cleared first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			return runIndex(cmd, args[0], force, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Clear all indexed data before indexing")

	return cmd
}

func runIndex(cmd *cobra.Command, dir string, force, outputJSON bool) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if force {
		if err := app.Admin.ClearAll(ctx); err != nil {
			return fmt.Errorf("failed to clear indexed data: %w", err)
		}
	}

	onProgress := func(processed, total int) {
		fmt.Fprintf(os.Stderr, "\rIndexing %d/%d files", processed, total)
		if processed == total {
			fmt.Fprintln(os.Stderr)
		}
	}
	if outputJSON {
		onProgress = nil
	}

	summary, err := app.Pipeline.IndexDirectory(ctx, root, onProgress)
	if err != nil {
		return err
	}

	if outputJSON {
		out, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Indexed %d, skipped %d, failed %d (of %d files)\n",
		summary.Indexed, summary.Skipped, summary.Failed, summary.Total)
	for _, fileErr := range summary.Errors {
		fmt.Fprintf(os.Stderr, "  %v\n", fileErr)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d files failed to index", summary.Failed)
	}
	return nil
}
