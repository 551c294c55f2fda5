package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ClearCmd creates the clear command.
func ClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all indexed data",
		Long:  "Removes every document, chunk, and embedding from the index. The database file itself is kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, yes bool) error {
	if !yes {
		fmt.Print("Delete all indexed data? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Admin.ClearAll(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear indexed data: %w", err)
	}

	fmt.Println("Cleared all indexed data.")
	return nil
}
