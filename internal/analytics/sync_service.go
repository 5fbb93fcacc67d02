package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devfolio-app/devfolio/internal/models"
)

// SyncInProgressError is returned when a sync is already running for a user.
type SyncInProgressError struct {
	UserID string
}

func (e *SyncInProgressError) Error() string {
	return fmt.Sprintf("sync already in progress for user: %s", e.UserID)
}

// NewSyncInProgressError creates a new SyncInProgressError
func NewSyncInProgressError(userID string) error {
	return &SyncInProgressError{UserID: userID}
}

// SyncStore is the slice of the store the sync service needs.
type SyncStore interface {
	GetUserAccount(ctx context.Context, userID string) (*models.UserAccount, error)
	GetSnapshot(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error)
	UpsertSnapshot(ctx context.Context, snapshot *models.AnalyticsSnapshot) error
	MarkSnapshotFailed(ctx context.Context, userID, lastError string, at time.Time) error
}

// ClientFactory builds a remote client for a user's access token.
type ClientFactory func(token string) RemoteClient

// SyncService orchestrates one user's sync: resolve the GitHub account,
// aggregate, persist. Concurrent syncs for the same user are rejected; the
// snapshot row itself is written with a single atomic upsert.
type SyncService struct {
	store     SyncStore
	newClient ClientFactory
	logger    *logrus.Logger
	aggOpts   []AggregatorOption
	now       func() time.Time

	mu         sync.Mutex
	inProgress map[string]bool
}

// NewSyncService creates a new sync service.
func NewSyncService(store SyncStore, newClient ClientFactory, logger *logrus.Logger, aggOpts ...AggregatorOption) *SyncService {
	return &SyncService{
		store:      store,
		newClient:  newClient,
		logger:     logger,
		aggOpts:    aggOpts,
		now:        time.Now,
		inProgress: make(map[string]bool),
	}
}

// Sync runs the full pipeline for one user and returns the persisted
// snapshot. On aggregation failure only the status, error and timestamp
// fields of the stored row are touched; previously synced data stays in
// place.
func (s *SyncService) Sync(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error) {
	s.mu.Lock()
	if s.inProgress[userID] {
		s.mu.Unlock()
		return nil, NewSyncInProgressError(userID)
	}
	s.inProgress[userID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inProgress, userID)
		s.mu.Unlock()
	}()

	logger := s.logger.WithField("user_id", userID)

	account, err := s.store.GetUserAccount(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("Failed to resolve GitHub account")
		return nil, fmt.Errorf("failed to resolve github account: %w", err)
	}

	client := s.newClient(account.AccessToken)
	aggregator := NewAggregator(client, s.logger, s.aggOpts...)

	analytics, err := aggregator.BuildAnalytics(ctx, account.GithubLogin)
	if err != nil {
		logger.WithError(err).Error("Sync failed")
		if markErr := s.store.MarkSnapshotFailed(ctx, userID, err.Error(), s.now()); markErr != nil {
			logger.WithError(markErr).Error("Failed to record failed sync status")
		}
		return nil, err
	}

	snapshot := &models.AnalyticsSnapshot{
		UserID:        userID,
		PublicRepos:   analytics.User.PublicRepos,
		PublicGists:   analytics.User.PublicGists,
		Followers:     analytics.User.Followers,
		Following:     analytics.User.Following,
		TotalStars:    analytics.TotalStars,
		TotalForks:    analytics.TotalForks,
		TotalWatchers: analytics.TotalWatchers,
		SyncStatus:    models.SyncStatusCompleted,
		LastSyncAt:    s.now(),
	}
	if err := snapshot.SetRepositories(analytics.Repositories); err != nil {
		return nil, fmt.Errorf("failed to serialize repositories: %w", err)
	}
	if err := snapshot.SetLanguages(analytics.Languages); err != nil {
		return nil, fmt.Errorf("failed to serialize languages: %w", err)
	}
	if err := snapshot.SetContributions(analytics.Contributions); err != nil {
		return nil, fmt.Errorf("failed to serialize contributions: %w", err)
	}

	if err := s.store.UpsertSnapshot(ctx, snapshot); err != nil {
		logger.WithError(err).Error("Failed to persist snapshot")
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"repos":     len(analytics.Repositories),
		"stars":     analytics.TotalStars,
		"languages": len(analytics.Languages),
	}).Info("Sync completed")

	return snapshot, nil
}

// GetSnapshot returns the last persisted snapshot for a user. Pure store
// read; no remote calls.
func (s *SyncService) GetSnapshot(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error) {
	return s.store.GetSnapshot(ctx, userID)
}
