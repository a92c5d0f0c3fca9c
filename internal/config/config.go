package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	Storage     StorageConfig
	Database    DatabaseConfig
	Snapshot    SnapshotConfig
	CORS        CORSConfig
}

// StorageConfig selects the persistence driver for the two collections.
type StorageConfig struct {
	// Driver is one of "file", "postgres" or "memory".
	Driver string
	// DataDir holds stock.json and history.json for the file driver.
	DataDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// SnapshotConfig controls the scheduled snapshot backups.
type SnapshotConfig struct {
	// Schedule is a cron expression; empty disables backups.
	Schedule string
	Dir      string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3001"),
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", "file"),
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "pantry_tracker"),
			User:     getEnv("DB_USER", "pantry_user"),
			Password: getEnv("DB_PASSWORD", "pantry_password"),
		},
		Snapshot: SnapshotConfig{
			Schedule: getEnv("SNAPSHOT_SCHEDULE", "0 3 * * *"),
			Dir:      getEnv("SNAPSHOT_DIR", "./backups"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				getEnv("FRONTEND_URL", "http://localhost:3000"),
				"http://localhost:3000",
			},
		},
	}
}

// DSN builds the postgres connection string for the postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
