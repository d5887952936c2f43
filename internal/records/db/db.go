// Package db implements the record stores on top of a relational database
// via GORM. SQLite backs the desktop deployment (a single file next to the
// application data); Postgres is available for shared setups. Both dialects
// run behind the same repository surface as the in-memory stores.
package db

import (
	"context"
	"fmt"

	dbmodels "github.com/gartstein/gstdesk/internal/records/db/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Repository wraps a gorm handle and exposes per-entity CRUD and search.
type Repository struct {
	db *gorm.DB
}

// Config selects the backing dialect and its connection settings.
type Config struct {
	// Dialect is "sqlite" or "postgres".
	Dialect string
	// Path is the database file for the sqlite dialect (":memory:" for tests).
	Path string
	// Postgres connection settings.
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewRepository opens the configured database and migrates the record tables.
func NewRepository(cfg *Config) (*Repository, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown dialect %q", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&dbmodels.Company{},
		&dbmodels.Category{},
		&dbmodels.Customer{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// NewRepositoryFromGorm wraps an already-open gorm handle. Tests use it to
// run against a migrated in-memory database.
func NewRepositoryFromGorm(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// WithTransaction runs fn against a transactional repository.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Exec runs a raw statement. Used by maintenance tooling only.
func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
