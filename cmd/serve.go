package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "projecthub-backend/cmd/api"
	"projecthub-backend/internal/project/scheduler"
)

var serveFlagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlagPort, "port", "p", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveFlagPort != "" {
		cfg.Port = serveFlagPort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.store.Close(closeCtx); err != nil {
			log.Printf("[Server] Failed to close storage: %v", err)
		}
	}()

	progressSync := scheduler.NewProgressSyncScheduler(a.projects, cfg.ProgressSyncInterval)
	progressSync.Start()
	defer progressSync.Stop()

	srv := api.NewHandler(cfg, a.tasks, a.projects).Server(":" + cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s (storage: %s)", cfg.Port, a.store.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
