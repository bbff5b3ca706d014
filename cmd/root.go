// Package cmd provides the projecthub command line: the HTTP server plus a
// few maintenance commands that share its storage configuration.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	projectUsecase "projecthub-backend/internal/project/usecase"
	taskUsecase "projecthub-backend/internal/task/usecase"
	"projecthub-backend/pkg/config"
	"projecthub-backend/pkg/database"
)

// Global flags.
var flagDriver string

// cfg is loaded once before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "projecthub",
	Short: "Project and task tracking backend",
	Long: `Projecthub serves a REST API for projects and the tasks attached to them.

Examples:
  projecthub serve --port 8080
  projecthub seed --reset
  projecthub stats --driver sqlite`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}
		cfg = config.Load()
		if flagDriver != "" {
			cfg.StorageDriver = flagDriver
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Storage driver: postgres, sqlite, mongo or memory (overrides STORAGE_DRIVER)")
}

// app is the wired core shared by every command.
type app struct {
	store    *database.Store
	tasks    taskUsecase.TaskUsecase
	projects projectUsecase.ProjectUsecase
}

func openApp(ctx context.Context) (*app, error) {
	store, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	return &app{
		store:    store,
		tasks:    taskUsecase.NewTaskUsecase(store.Tasks),
		projects: projectUsecase.NewProjectUsecase(store.Projects, store.Tasks),
	}, nil
}
