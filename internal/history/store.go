// Package history keeps a record of past runs in a relational database,
// sqlite by default or MySQL when configured.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"utp/internal/config"
)

// Store persists run summaries and their failures
type Store struct {
	db     *sql.DB
	config *config.Config
}

// Open connects to the history database for the configured driver and
// makes sure the schema exists
func Open(cfg *config.Config) (*Store, error) {
	var db *sql.DB
	var err error

	switch cfg.HistoryDriver {
	case "sqlite":
		path := cfg.GetHistoryPath()
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
			return nil, fmt.Errorf("create history dir: %w", mkErr)
		}
		db, err = sql.Open("sqlite", path)
	case "mysql":
		db, err = sql.Open("mysql", mysqlDSN(cfg))
	default:
		return nil, fmt.Errorf("unknown history driver: %s", cfg.HistoryDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	store := &Store{db: db, config: cfg}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// mysqlDSN builds the MySQL connection string from the environment
func mysqlDSN(cfg *config.Config) string {
	// Load .env file from project directory
	envPath := filepath.Join(cfg.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_DATABASE")
	if dbName == "" {
		dbName = "utp_history"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", dbUser, dbPassword, dbHost, dbPort, dbName)
}

// ensureSchema creates the history tables when they are missing. The
// statements stick to syntax both drivers accept.
func (s *Store) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id VARCHAR(36) PRIMARY KEY,
			total_binaries INT NOT NULL,
			passed_binaries INT NOT NULL,
			failed_binaries INT NOT NULL,
			passed_cases INT NOT NULL,
			failed_cases INT NOT NULL,
			duration_seconds DOUBLE PRECISION NOT NULL,
			workers INT NOT NULL,
			created_at VARCHAR(35) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_failures (
			run_id VARCHAR(36) NOT NULL,
			test_name VARCHAR(255) NOT NULL,
			binary_path VARCHAR(512) NOT NULL,
			failure_type VARCHAR(32) NOT NULL,
			file VARCHAR(512) NOT NULL,
			line INT NOT NULL,
			message TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create history schema: %w", err)
		}
	}
	return nil
}
