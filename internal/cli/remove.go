package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docsearch/internal/storage"
)

// RemoveCmd creates the remove command.
func RemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove one document from the index",
		Long:  "Deletes the document indexed for the given file path, along with its chunks and embeddings.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Pipeline.RemoveDocument(cmd.Context(), abs); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no document indexed for %s", abs)
		}
		return err
	}

	fmt.Printf("Removed %s\n", abs)
	return nil
}
