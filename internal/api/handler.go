package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devfolio-app/devfolio/internal/analytics"
	"github.com/devfolio-app/devfolio/internal/db"
	"github.com/devfolio-app/devfolio/internal/github"
	"github.com/devfolio-app/devfolio/internal/models"
)

// userIDHeader carries the authenticated user identity, injected by the
// fronting auth layer.
const userIDHeader = "X-User-ID"

// AnalyticsService is the slice of the sync service the handlers need.
type AnalyticsService interface {
	Sync(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error)
	GetSnapshot(ctx context.Context, userID string) (*models.AnalyticsSnapshot, error)
}

type Handler struct {
	analytics AnalyticsService
	store     db.Store
	logger    *logrus.Logger
}

func NewHandler(analytics AnalyticsService, store db.Store, logger *logrus.Logger) *Handler {
	return &Handler{
		analytics: analytics,
		store:     store,
		logger:    logger,
	}
}

// ErrorResponse is the error payload for all endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}

// SyncResponse summarizes a completed sync
type SyncResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    SyncSummaryData `json:"data"`
}

// SyncSummaryData holds the headline numbers of a sync
type SyncSummaryData struct {
	TotalRepos int `json:"total_repos"`
	TotalStars int `json:"total_stars"`
	TotalForks int `json:"total_forks"`
	Languages  int `json:"languages"`
}

// SnapshotResponse is a persisted snapshot with its blobs deserialized
type SnapshotResponse struct {
	UserID        string                   `json:"user_id"`
	PublicRepos   int                      `json:"public_repos"`
	PublicGists   int                      `json:"public_gists"`
	Followers     int                      `json:"followers"`
	Following     int                      `json:"following"`
	Repositories  []github.Repository      `json:"repositories"`
	Languages     map[string]float64       `json:"languages"`
	Contributions []models.ContributionDay `json:"contributions"`
	TotalStars    int                      `json:"total_stars"`
	TotalForks    int                      `json:"total_forks"`
	TotalWatchers int                      `json:"total_watchers"`
	SyncStatus    string                   `json:"sync_status"`
	LastSyncAt    time.Time                `json:"last_sync_at"`
	LastError     string                   `json:"last_error,omitempty"`
}

func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader(userIDHeader)
	return id, id != ""
}

// SyncGitHubData godoc
// @Summary Sync GitHub analytics
// @Description Fetch the user's GitHub profile, repositories, languages and activity and persist a fresh analytics snapshot
// @Tags github
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Success 200 {object} SyncResponse
// @Failure 400 {object} ErrorResponse "GitHub account not connected"
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sync already in progress"
// @Failure 502 {object} ErrorResponse "GitHub unavailable"
// @Router /github/sync [post]
func (h *Handler) SyncGitHubData(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	snapshot, err := h.analytics.Sync(c.Request.Context(), uid)
	if err != nil {
		var inProgress *analytics.SyncInProgressError
		switch {
		case errors.As(err, &inProgress):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case db.IsNotFound(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "GitHub account not connected"})
		case github.IsRemoteUnavailable(err):
			h.logger.WithError(err).Error("GitHub sync failed")
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to sync GitHub data"})
		default:
			h.logger.WithError(err).Error("GitHub sync failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sync GitHub data"})
		}
		return
	}

	repos, err := snapshot.GetRepositories()
	if err != nil {
		h.logger.WithError(err).Error("Failed to deserialize synced repositories")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sync GitHub data"})
		return
	}
	languages, err := snapshot.GetLanguages()
	if err != nil {
		h.logger.WithError(err).Error("Failed to deserialize synced languages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sync GitHub data"})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{
		Success: true,
		Message: "GitHub data synced successfully",
		Data: SyncSummaryData{
			TotalRepos: len(repos),
			TotalStars: snapshot.TotalStars,
			TotalForks: snapshot.TotalForks,
			Languages:  len(languages),
		},
	})
}

// GetGitHubData godoc
// @Summary Get GitHub analytics
// @Description Return the last persisted analytics snapshot for the user
// @Tags github
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Success 200 {object} SnapshotResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Never synced"
// @Router /github [get]
func (h *Handler) GetGitHubData(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	snapshot, err := h.analytics.GetSnapshot(c.Request.Context(), uid)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No GitHub data found. Please sync first."})
			return
		}
		h.logger.WithError(err).Error("Failed to fetch GitHub data")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch GitHub data"})
		return
	}

	repos, err := snapshot.GetRepositories()
	if err != nil {
		h.logger.WithError(err).Error("Failed to deserialize repositories")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch GitHub data"})
		return
	}
	languages, err := snapshot.GetLanguages()
	if err != nil {
		h.logger.WithError(err).Error("Failed to deserialize languages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch GitHub data"})
		return
	}
	contributions, err := snapshot.GetContributions()
	if err != nil {
		h.logger.WithError(err).Error("Failed to deserialize contributions")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch GitHub data"})
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{
		UserID:        snapshot.UserID,
		PublicRepos:   snapshot.PublicRepos,
		PublicGists:   snapshot.PublicGists,
		Followers:     snapshot.Followers,
		Following:     snapshot.Following,
		Repositories:  repos,
		Languages:     languages,
		Contributions: contributions,
		TotalStars:    snapshot.TotalStars,
		TotalForks:    snapshot.TotalForks,
		TotalWatchers: snapshot.TotalWatchers,
		SyncStatus:    snapshot.SyncStatus,
		LastSyncAt:    snapshot.LastSyncAt,
		LastError:     snapshot.LastError,
	})
}
