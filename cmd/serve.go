package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paperscout/paperscout/internal/ingest"
	"github.com/paperscout/paperscout/internal/progress"
	"github.com/paperscout/paperscout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the paperscout HTTP API server",
	Long: `Starts an HTTP server exposing ingestion, search, summarization, and
planning over a JSON API, plus a websocket endpoint that streams plan
results task by task.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.ServerPort
	}
	if !allowAll {
		allowAll = cfg.AllowAllOrigins
	}

	logger := newLogger()
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return fmt.Errorf("opening paper registry: %w", err)
	}
	defer reg.Close()

	ag, err := newAgent(cfg, store, logger)
	if err != nil {
		return err
	}

	pipeline := ingest.NewPipeline(newCatalog(cfg), store, reg, &progress.Silent{}, logger)

	srv := server.New(server.Config{Port: port, AllowAll: allowAll}, pipeline, store, ag, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	fmt.Printf("Paperscout server listening on http://localhost:%d\n", port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
