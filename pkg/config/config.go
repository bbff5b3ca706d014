package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by database.Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port                 string
	GinMode              string
	StorageDriver        string
	DatabaseURL          string
	SQLitePath           string
	MongoURI             string
	MongoDatabase        string
	ProgressSyncInterval time.Duration
	CORSAllowedOrigin    string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Disabled unless configured
	var syncInterval time.Duration
	if v := os.Getenv("PROGRESS_SYNC_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			syncInterval = parsed
		}
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "release"),
		StorageDriver:        getEnv("STORAGE_DRIVER", DriverPostgres),
		DatabaseURL:          getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=projecthub port=5432 sslmode=disable"),
		SQLitePath:           getEnv("SQLITE_PATH", "projecthub.db"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:        getEnv("MONGO_DATABASE", "projecthub"),
		ProgressSyncInterval: syncInterval,
		CORSAllowedOrigin:    getEnv("CORS_ALLOWED_ORIGIN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
