// Package database opens the configured storage backend and hands back the
// repositories built on it.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	projectRepo "projecthub-backend/internal/project/repository"
	taskRepo "projecthub-backend/internal/task/repository"
	"projecthub-backend/pkg/config"
)

// Store bundles the repositories of one backend.
type Store struct {
	Driver   string
	Projects projectRepo.ProjectRepository
	Tasks    taskRepo.TaskRepository
	close    func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to cfg.StorageDriver, migrates or indexes it, and returns
// the repositories.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := NewPostgresConnection(cfg)
		if err != nil {
			return nil, err
		}
		return gormStore(cfg.StorageDriver, db)

	case config.DriverSQLite:
		db, err := NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return gormStore(cfg.StorageDriver, db)

	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := NewMongoConnection(connectCtx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.MongoDatabase)
		if err := EnsureMongoIndexes(connectCtx, mdb); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Printf("[Database] Connected to mongo database %s", cfg.MongoDatabase)
		return &Store{
			Driver:   cfg.StorageDriver,
			Projects: projectRepo.NewMongoProjectRepository(mdb),
			Tasks:    taskRepo.NewMongoTaskRepository(mdb),
			close:    client.Disconnect,
		}, nil

	case config.DriverMemory:
		log.Printf("[Database] Using in-memory storage, data is lost on exit")
		return &Store{
			Driver:   cfg.StorageDriver,
			Projects: projectRepo.NewMemoryProjectRepository(),
			Tasks:    taskRepo.NewMemoryTaskRepository(),
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
