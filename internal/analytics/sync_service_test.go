package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devfolio-app/devfolio/internal/db"
	"github.com/devfolio-app/devfolio/internal/github"
	"github.com/devfolio-app/devfolio/internal/models"
)

// MockSyncStore is a mock implementation of SyncStore
type MockSyncStore struct {
	mock.Mock
}

func (m *MockSyncStore) GetUserAccount(ctx context.Context, userID string) (*models.UserAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAccount), args.Error(1)
}

func (m *MockSyncStore) GetSnapshot(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsSnapshot), args.Error(1)
}

func (m *MockSyncStore) UpsertSnapshot(ctx context.Context, snapshot *models.AnalyticsSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSyncStore) MarkSnapshotFailed(ctx context.Context, userID, lastError string, at time.Time) error {
	args := m.Called(ctx, userID, lastError, at)
	return args.Error(0)
}

func testSyncService(store SyncStore, client RemoteClient) *SyncService {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	clock := func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	svc := NewSyncService(store, func(token string) RemoteClient { return client }, logger, WithClock(clock))
	svc.now = clock
	return svc
}

func TestSyncService_Sync(t *testing.T) {
	ctx := context.Background()

	account := &models.UserAccount{
		UserID:      "user-1",
		GithubLogin: "octocat",
		AccessToken: "token",
	}
	repos := []github.Repository{
		{ID: 1, Name: "a", StargazersCount: 3, ForksCount: 1, WatchersCount: 2},
		{ID: 2, Name: "b", StargazersCount: 0, ForksCount: 4, WatchersCount: 0},
	}

	t.Run("successful sync persists a completed snapshot", func(t *testing.T) {
		store := new(MockSyncStore)
		store.On("GetUserAccount", mock.Anything, "user-1").Return(account, nil)
		store.On("UpsertSnapshot", mock.Anything, mock.AnythingOfType("*models.AnalyticsSnapshot")).Return(nil)

		svc := testSyncService(store, workingRemoteClient(repos))

		snapshot, err := svc.Sync(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", snapshot.UserID)
		assert.Equal(t, models.SyncStatusCompleted, snapshot.SyncStatus)
		assert.Equal(t, 3, snapshot.TotalStars)
		assert.Equal(t, 5, snapshot.TotalForks)
		assert.Equal(t, 2, snapshot.TotalWatchers)
		assert.Equal(t, 2, snapshot.PublicRepos)

		// Blobs round-trip.
		gotRepos, err := snapshot.GetRepositories()
		require.NoError(t, err)
		assert.Len(t, gotRepos, 2)
		gotLangs, err := snapshot.GetLanguages()
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"Go": 60, "Python": 40}, gotLangs)
		gotDays, err := snapshot.GetContributions()
		require.NoError(t, err)
		assert.Equal(t, 0, len(gotDays)%7)

		store.AssertExpectations(t)
	})

	t.Run("sync is idempotent for unchanged remote data", func(t *testing.T) {
		store := new(MockSyncStore)
		store.On("GetUserAccount", mock.Anything, "user-1").Return(account, nil)
		store.On("UpsertSnapshot", mock.Anything, mock.Anything).Return(nil)

		svc := testSyncService(store, workingRemoteClient(repos))

		first, err := svc.Sync(ctx, "user-1")
		require.NoError(t, err)
		second, err := svc.Sync(ctx, "user-1")
		require.NoError(t, err)

		assert.Equal(t, first.Repositories, second.Repositories)
		assert.Equal(t, first.Languages, second.Languages)
		assert.Equal(t, first.Contributions, second.Contributions)
		assert.Equal(t, first.TotalStars, second.TotalStars)
		assert.Equal(t, first.TotalForks, second.TotalForks)
		assert.Equal(t, first.SyncStatus, second.SyncStatus)
	})

	t.Run("aggregation failure marks the snapshot failed", func(t *testing.T) {
		store := new(MockSyncStore)
		store.On("GetUserAccount", mock.Anything, "user-1").Return(account, nil)
		store.On("MarkSnapshotFailed", mock.Anything, "user-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

		client := workingRemoteClient(repos)
		client.repositories = func(ctx context.Context, login string) ([]github.Repository, error) {
			return nil, github.NewRemoteError(503, "unavailable", nil)
		}
		svc := testSyncService(store, client)

		_, err := svc.Sync(ctx, "user-1")
		assert.Error(t, err)
		assert.True(t, github.IsRemoteUnavailable(err))

		store.AssertExpectations(t)
		store.AssertNotCalled(t, "UpsertSnapshot", mock.Anything, mock.Anything)
	})

	t.Run("missing account aborts before any fetch", func(t *testing.T) {
		store := new(MockSyncStore)
		store.On("GetUserAccount", mock.Anything, "user-2").
			Return(nil, fmt.Errorf("user account user-2: %w", db.ErrNotFound))

		svc := testSyncService(store, workingRemoteClient(repos))

		_, err := svc.Sync(ctx, "user-2")
		assert.Error(t, err)
		assert.True(t, db.IsNotFound(err))
		store.AssertNotCalled(t, "MarkSnapshotFailed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent sync for the same user is rejected", func(t *testing.T) {
		store := new(MockSyncStore)
		svc := testSyncService(store, workingRemoteClient(repos))

		svc.mu.Lock()
		svc.inProgress["user-1"] = true
		svc.mu.Unlock()

		_, err := svc.Sync(ctx, "user-1")
		assert.Error(t, err)
		assert.IsType(t, &SyncInProgressError{}, err)
	})

	t.Run("a different user is not blocked", func(t *testing.T) {
		other := &models.UserAccount{UserID: "user-3", GithubLogin: "hubber", AccessToken: "t"}
		store := new(MockSyncStore)
		store.On("GetUserAccount", mock.Anything, "user-3").Return(other, nil)
		store.On("UpsertSnapshot", mock.Anything, mock.Anything).Return(nil)

		svc := testSyncService(store, workingRemoteClient(repos))
		svc.mu.Lock()
		svc.inProgress["user-1"] = true
		svc.mu.Unlock()

		_, err := svc.Sync(ctx, "user-3")
		assert.NoError(t, err)
	})
}

func TestSyncService_GetSnapshot(t *testing.T) {
	ctx := context.Background()

	store := new(MockSyncStore)
	want := &models.AnalyticsSnapshot{UserID: "user-1", SyncStatus: models.SyncStatusCompleted}
	store.On("GetSnapshot", mock.Anything, "user-1").Return(want, nil)

	svc := testSyncService(store, workingRemoteClient(nil))

	got, err := svc.GetSnapshot(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
