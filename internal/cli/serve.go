package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/copenmusic/concert-scraper/internal/api"
	"github.com/copenmusic/concert-scraper/internal/config"
)

var flagPort int

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scraped dataset over HTTP",
		Long: `Starts a small read-only API on top of the output directory.

GET /concerts returns the unified dataset from the latest run.
GET /health returns OK.`,
		RunE: runServe,
	}

	cmd.Flags().IntVar(&flagPort, "port", 3001, "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	server := api.NewServer(cfg.Global.Output.Directory, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(fmt.Sprintf(":%d", flagPort))
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
