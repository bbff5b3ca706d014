package database

import (
	"context"
	"fmt"
	"log"

	projectdomain "projecthub-backend/internal/project/domain"
	projectRepo "projecthub-backend/internal/project/repository"
	taskdomain "projecthub-backend/internal/task/domain"
	taskRepo "projecthub-backend/internal/task/repository"
	"projecthub-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// NewPostgresConnection opens the postgres database at cfg.DatabaseURL
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	log.Printf("[Database] Connected to postgres")
	return db, nil
}

// NewSQLiteConnection opens (creating if needed) the sqlite database at path.
// Pass "file::memory:?cache=shared" for a throwaway database.
func NewSQLiteConnection(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	log.Printf("[Database] Opened sqlite database %s", path)
	return db, nil
}

// AutoMigrate creates or updates the projects and tasks tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&projectdomain.Project{}, &taskdomain.Task{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func gormStore(driver string, db *gorm.DB) (*Store, error) {
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return &Store{
		Driver:   driver,
		Projects: projectRepo.NewGormProjectRepository(db),
		Tasks:    taskRepo.NewGormTaskRepository(db),
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}
