package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"docsearch/internal/http"
)

// ServeCmd creates the serve command.
func ServeCmd() *cobra.Command {
	var (
		port string
		root string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Starts the HTTP API. Endpoints:

  POST   /api/index      trigger an indexing run (?force=true clears first)
  POST   /api/search     semantic query
  DELETE /api/documents  remove one document by ?path=
  GET    /api/stats      index statistics
  GET    /api/health     health check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port, root)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default: API_PORT)")
	cmd.Flags().StringVar(&root, "root", "", "Default directory for index requests that name none")

	return cmd
}

func runServe(cmd *cobra.Command, port, root string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if port == "" {
		port = app.Config.APIPort
	}
	if root != "" {
		if root, err = filepath.Abs(root); err != nil {
			return fmt.Errorf("failed to resolve root: %w", err)
		}
	}

	router := http.NewRouter(&http.Deps{
		SearchEngine: app.Engine,
		Pipeline:     app.Pipeline,
		Admin:        app.Admin,
		DB:           app.DB,
		IndexRoot:    root,
	})

	server := &nethttp.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}
