package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/devfolio-app/devfolio/internal/models"
)

// GetUserAccount retrieves the GitHub account link for a user.
func (s *PostgresStore) GetUserAccount(ctx context.Context, userID string) (*models.UserAccount, error) {
	var account models.UserAccount

	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, github_login, access_token, created_at, updated_at
		FROM user_accounts
		WHERE user_id = $1
	`, userID).Scan(
		&account.UserID,
		&account.GithubLogin,
		&account.AccessToken,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user account %s: %w", userID, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user account: %w", err)
	}

	return &account, nil
}

// SaveUserAccount inserts or replaces the GitHub account link for a user.
func (s *PostgresStore) SaveUserAccount(ctx context.Context, account *models.UserAccount) error {
	if account == nil {
		return fmt.Errorf("account cannot be nil")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_accounts (user_id, github_login, access_token, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			github_login = EXCLUDED.github_login,
			access_token = EXCLUDED.access_token,
			updated_at = NOW()
	`, account.UserID, account.GithubLogin, account.AccessToken)

	if err != nil {
		return fmt.Errorf("failed to save user account: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the persisted analytics snapshot for a user.
func (s *PostgresStore) GetSnapshot(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error) {
	var snapshot models.AnalyticsSnapshot

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, public_repos, public_gists, followers, following,
			repositories, languages, contributions,
			total_stars, total_forks, total_watchers,
			sync_status, last_sync_at, last_error, created_at, updated_at
		FROM github_snapshots
		WHERE user_id = $1
	`, userID).Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.PublicRepos,
		&snapshot.PublicGists,
		&snapshot.Followers,
		&snapshot.Following,
		&snapshot.Repositories,
		&snapshot.Languages,
		&snapshot.Contributions,
		&snapshot.TotalStars,
		&snapshot.TotalForks,
		&snapshot.TotalWatchers,
		&snapshot.SyncStatus,
		&snapshot.LastSyncAt,
		&snapshot.LastError,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot for user %s: %w", userID, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return &snapshot, nil
}

// UpsertSnapshot writes a completed snapshot, replacing every data field of
// any existing row for the user in one atomic statement.
func (s *PostgresStore) UpsertSnapshot(ctx context.Context, snapshot *models.AnalyticsSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO github_snapshots (
			user_id, public_repos, public_gists, followers, following,
			repositories, languages, contributions,
			total_stars, total_forks, total_watchers,
			sync_status, last_sync_at, last_error, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, '', NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			public_repos = EXCLUDED.public_repos,
			public_gists = EXCLUDED.public_gists,
			followers = EXCLUDED.followers,
			following = EXCLUDED.following,
			repositories = EXCLUDED.repositories,
			languages = EXCLUDED.languages,
			contributions = EXCLUDED.contributions,
			total_stars = EXCLUDED.total_stars,
			total_forks = EXCLUDED.total_forks,
			total_watchers = EXCLUDED.total_watchers,
			sync_status = EXCLUDED.sync_status,
			last_sync_at = EXCLUDED.last_sync_at,
			last_error = '',
			updated_at = NOW()
	`,
		snapshot.UserID,
		snapshot.PublicRepos,
		snapshot.PublicGists,
		snapshot.Followers,
		snapshot.Following,
		snapshot.Repositories,
		snapshot.Languages,
		snapshot.Contributions,
		snapshot.TotalStars,
		snapshot.TotalForks,
		snapshot.TotalWatchers,
		snapshot.SyncStatus,
		snapshot.LastSyncAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// MarkSnapshotFailed records a failed sync. Only the status, error and
// timestamp fields change; data from the last successful sync stays in place.
// When no row exists yet a bare failed row is created.
func (s *PostgresStore) MarkSnapshotFailed(ctx context.Context, userID, lastError string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO github_snapshots (user_id, sync_status, last_sync_at, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			sync_status = EXCLUDED.sync_status,
			last_sync_at = EXCLUDED.last_sync_at,
			last_error = EXCLUDED.last_error,
			updated_at = NOW()
	`, userID, models.SyncStatusFailed, at, lastError)

	if err != nil {
		return fmt.Errorf("failed to mark snapshot failed: %w", err)
	}

	return nil
}
