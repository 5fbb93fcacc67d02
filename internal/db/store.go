package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/devfolio-app/devfolio/internal/models"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Store defines the interface for database operations
type Store interface {
	// Account operations
	GetUserAccount(ctx context.Context, userID string) (*models.UserAccount, error)
	SaveUserAccount(ctx context.Context, account *models.UserAccount) error

	// Snapshot operations
	GetSnapshot(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error)
	UpsertSnapshot(ctx context.Context, snapshot *models.AnalyticsSnapshot) error
	MarkSnapshotFailed(ctx context.Context, userID, lastError string, at time.Time) error

	// Resume operations
	ListResumes(ctx context.Context, userID string) ([]*models.ResumeSummary, error)
	CreateResume(ctx context.Context, resume *models.Resume) error
	GetResume(ctx context.Context, id string) (*models.Resume, error)
	GetResumeBySlug(ctx context.Context, slug string) (*models.Resume, error)
	UpdateResume(ctx context.Context, resume *models.Resume) error
	DeleteResume(ctx context.Context, id string) error
	IncrementResumeViews(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

type PostgresStore struct {
	db *sql.DB
}

// Open opens and pings a Postgres connection.
func Open(connectionString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewPostgresStore creates a store over an open connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate runs the goose migrations.
func (s *PostgresStore) Migrate() error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "internal/db/migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
