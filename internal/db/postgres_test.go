package db

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio-app/devfolio/internal/models"
)

func setupMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewPostgresStore(mockDB), mock
}

func TestPostgresStore_GetUserAccount(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("returns the account when it exists", func(t *testing.T) {
		store, mock := setupMockStore(t)

		rows := sqlmock.NewRows([]string{"user_id", "github_login", "access_token", "created_at", "updated_at"}).
			AddRow("user-1", "octocat", "token", now, now)
		mock.ExpectQuery("SELECT user_id, github_login, access_token").
			WithArgs("user-1").
			WillReturnRows(rows)

		account, err := store.GetUserAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "octocat", account.GithubLogin)
		assert.Equal(t, "token", account.AccessToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for an unknown user", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery("SELECT user_id, github_login, access_token").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		_, err := store.GetUserAccount(ctx, "ghost")
		assert.True(t, IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_SaveUserAccount(t *testing.T) {
	ctx := context.Background()
	store, mock := setupMockStore(t)

	mock.ExpectExec("INSERT INTO user_accounts").
		WithArgs("user-1", "octocat", "token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveUserAccount(ctx, &models.UserAccount{
		UserID:      "user-1",
		GithubLogin: "octocat",
		AccessToken: "token",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Run("rejects nil account", func(t *testing.T) {
		err := store.SaveUserAccount(ctx, nil)
		assert.Error(t, err)
	})
}

func TestPostgresStore_GetSnapshot(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("returns the snapshot when it exists", func(t *testing.T) {
		store, mock := setupMockStore(t)

		rows := sqlmock.NewRows([]string{
			"id", "user_id", "public_repos", "public_gists", "followers", "following",
			"repositories", "languages", "contributions",
			"total_stars", "total_forks", "total_watchers",
			"sync_status", "last_sync_at", "last_error", "created_at", "updated_at",
		}).AddRow(
			1, "user-1", 12, 2, 10, 5,
			`[]`, `{"Go":100}`, `[]`,
			42, 7, 3,
			models.SyncStatusCompleted, now, "", now, now,
		)
		mock.ExpectQuery("SELECT id, user_id, public_repos").
			WithArgs("user-1").
			WillReturnRows(rows)

		snapshot, err := store.GetSnapshot(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 42, snapshot.TotalStars)
		assert.Equal(t, models.SyncStatusCompleted, snapshot.SyncStatus)

		langs, err := snapshot.GetLanguages()
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"Go": 100}, langs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no snapshot exists", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery("SELECT id, user_id, public_repos").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.GetSnapshot(ctx, "user-1")
		assert.True(t, IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_UpsertSnapshot(t *testing.T) {
	ctx := context.Background()
	store, mock := setupMockStore(t)

	now := time.Now()
	snapshot := &models.AnalyticsSnapshot{
		UserID:        "user-1",
		PublicRepos:   12,
		PublicGists:   2,
		Followers:     10,
		Following:     5,
		Repositories:  `[]`,
		Languages:     `{"Go":100}`,
		Contributions: `[]`,
		TotalStars:    42,
		TotalForks:    7,
		TotalWatchers: 3,
		SyncStatus:    models.SyncStatusCompleted,
		LastSyncAt:    now,
	}

	mock.ExpectExec("INSERT INTO github_snapshots").
		WithArgs("user-1", 12, 2, 10, 5, `[]`, `{"Go":100}`, `[]`, 42, 7, 3,
			models.SyncStatusCompleted, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.UpsertSnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Run("rejects nil snapshot", func(t *testing.T) {
		err := store.UpsertSnapshot(ctx, nil)
		assert.Error(t, err)
	})
}

func TestPostgresStore_MarkSnapshotFailed(t *testing.T) {
	ctx := context.Background()
	store, mock := setupMockStore(t)

	at := time.Now()
	mock.ExpectExec("INSERT INTO github_snapshots").
		WithArgs("user-1", models.SyncStatusFailed, at, "remote unavailable").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.MarkSnapshotFailed(ctx, "user-1", "remote unavailable", at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListResumes(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("returns summaries most recently updated first", func(t *testing.T) {
		store, mock := setupMockStore(t)

		rows := sqlmock.NewRows([]string{
			"id", "title", "slug", "template", "theme", "is_public", "views", "downloads", "created_at", "updated_at",
		}).
			AddRow("id-2", "Newer", "newer", "modern", "blue", true, 3, 0, now, now).
			AddRow("id-1", "Older", "older", "classic", "green", false, 0, 1, now, now)
		mock.ExpectQuery("SELECT id, title, slug").
			WithArgs("user-1").
			WillReturnRows(rows)

		resumes, err := store.ListResumes(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, resumes, 2)
		assert.Equal(t, "Newer", resumes[0].Title)
		assert.Equal(t, "Older", resumes[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty for a user with no resumes", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery("SELECT id, title, slug").
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		resumes, err := store.ListResumes(ctx, "user-2")
		require.NoError(t, err)
		assert.Empty(t, resumes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_CreateResume(t *testing.T) {
	ctx := context.Background()
	store, mock := setupMockStore(t)

	resume := &models.Resume{
		ID:                "id-1",
		UserID:            "user-1",
		Title:             "My Resume",
		Slug:              "my-resume",
		Template:          "modern",
		Theme:             "blue",
		PersonalInfo:      `{}`,
		Summary:           ``,
		Experience:        `[]`,
		Education:         `[]`,
		Skills:            `[]`,
		Projects:          `[]`,
		IsPublic:          false,
		IncludeGithubData: true,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("id-1", "user-1", "My Resume", "my-resume", "modern", "blue",
			`{}`, ``, `[]`, `[]`, `[]`, `[]`, false, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.CreateResume(ctx, resume)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetResume(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("returns the resume when it exists", func(t *testing.T) {
		store, mock := setupMockStore(t)

		rows := sqlmock.NewRows([]string{
			"id", "user_id", "title", "slug", "template", "theme",
			"personal_info", "summary", "experience", "education", "skills", "projects",
			"is_public", "include_github_data", "views", "downloads", "created_at", "updated_at",
		}).AddRow(
			"id-1", "user-1", "My Resume", "my-resume", "modern", "blue",
			`{}`, ``, `[]`, `[]`, `[]`, `[]`,
			true, true, 4, 1, now, now,
		)
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("id-1").
			WillReturnRows(rows)

		resume, err := store.GetResume(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "My Resume", resume.Title)
		assert.True(t, resume.IsPublic)
		assert.Equal(t, 4, resume.Views)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.GetResume(ctx, "ghost")
		assert.True(t, IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_GetResumeBySlug(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("returns the resume for a known slug", func(t *testing.T) {
		store, mock := setupMockStore(t)

		rows := sqlmock.NewRows([]string{
			"id", "user_id", "title", "slug", "template", "theme",
			"personal_info", "summary", "experience", "education", "skills", "projects",
			"is_public", "include_github_data", "views", "downloads", "created_at", "updated_at",
		}).AddRow(
			"id-1", "user-1", "My Resume", "my-resume", "modern", "blue",
			`{}`, ``, `[]`, `[]`, `[]`, `[]`,
			true, true, 4, 1, now, now,
		)
		mock.ExpectQuery("FROM resumes").
			WithArgs("my-resume").
			WillReturnRows(rows)

		resume, err := store.GetResumeBySlug(ctx, "my-resume")
		require.NoError(t, err)
		assert.Equal(t, "id-1", resume.ID)
		assert.Equal(t, "my-resume", resume.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for an unknown slug", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery("FROM resumes").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.GetResumeBySlug(ctx, "ghost")
		assert.True(t, IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_UpdateResume(t *testing.T) {
	ctx := context.Background()

	resume := &models.Resume{
		ID:                "id-1",
		Title:             "Updated",
		Slug:              "updated",
		Template:          "classic",
		Theme:             "green",
		PersonalInfo:      `{}`,
		Summary:           `Engineer`,
		Experience:        `[]`,
		Education:         `[]`,
		Skills:            `[]`,
		Projects:          `[]`,
		IsPublic:          true,
		IncludeGithubData: false,
	}

	t.Run("updates mutable fields", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectExec("UPDATE resumes SET").
			WithArgs("id-1", "Updated", "updated", "classic", "green",
				`{}`, `Engineer`, `[]`, `[]`, `[]`, `[]`, true, false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.UpdateResume(ctx, resume)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no row matches", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectExec("UPDATE resumes SET").
			WithArgs("id-1", "Updated", "updated", "classic", "green",
				`{}`, `Engineer`, `[]`, `[]`, `[]`, `[]`, true, false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.UpdateResume(ctx, resume)
		assert.True(t, IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_DeleteResume(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing resume", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM resumes WHERE id = $1`)).
			WithArgs("id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.DeleteResume(ctx, "id-1")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM resumes WHERE id = $1`)).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.DeleteResume(ctx, "ghost")
		assert.True(t, IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_IncrementResumeViews(t *testing.T) {
	ctx := context.Background()
	store, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE resumes SET views = views + 1 WHERE id = $1`)).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.IncrementResumeViews(ctx, "id-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SlugExists(t *testing.T) {
	ctx := context.Background()

	t.Run("reports a taken slug", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("my-resume", "").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := store.SlugExists(ctx, "my-resume", "")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a free slug", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("fresh", "").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := store.SlugExists(ctx, "fresh", "")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ignores the excluded resume's own slug", func(t *testing.T) {
		store, mock := setupMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM resumes WHERE slug = $1 AND id::text <> $2)`)).
			WithArgs("my-resume", "id-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := store.SlugExists(ctx, "my-resume", "id-1")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
