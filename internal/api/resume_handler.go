package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devfolio-app/devfolio/internal/db"
	"github.com/devfolio-app/devfolio/internal/models"
	"github.com/devfolio-app/devfolio/pkg/utils"
)

// ResumeRequest is the create payload. The section blobs are stored opaquely;
// their shape belongs to the editor.
type ResumeRequest struct {
	Title             string          `json:"title" binding:"required,max=100"`
	Template          string          `json:"template"`
	Theme             string          `json:"theme"`
	PersonalInfo      json.RawMessage `json:"personal_info"`
	Summary           string          `json:"summary"`
	Experience        json.RawMessage `json:"experience"`
	Education         json.RawMessage `json:"education"`
	Skills            json.RawMessage `json:"skills"`
	Projects          json.RawMessage `json:"projects"`
	IsPublic          bool            `json:"is_public"`
	IncludeGithubData *bool           `json:"include_github_data"`
}

// UpdateResumeRequest is the update payload; absent fields are left as they
// are.
type UpdateResumeRequest struct {
	Title             *string         `json:"title" binding:"omitempty,min=1,max=100"`
	Template          *string         `json:"template"`
	Theme             *string         `json:"theme"`
	PersonalInfo      json.RawMessage `json:"personal_info"`
	Summary           *string         `json:"summary"`
	Experience        json.RawMessage `json:"experience"`
	Education         json.RawMessage `json:"education"`
	Skills            json.RawMessage `json:"skills"`
	Projects          json.RawMessage `json:"projects"`
	IsPublic          *bool           `json:"is_public"`
	IncludeGithubData *bool           `json:"include_github_data"`
}

// ResumeListResponse wraps the owner-scoped resume list
type ResumeListResponse struct {
	Resumes []*models.ResumeSummary `json:"resumes"`
}

// ResumeResponse wraps a single resume
type ResumeResponse struct {
	Resume *models.Resume `json:"resume"`
}

// ListResumes godoc
// @Summary List resumes
// @Description List the authenticated user's resumes, most recently updated first
// @Tags resumes
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Success 200 {object} ResumeListResponse
// @Failure 401 {object} ErrorResponse
// @Router /resumes [get]
func (h *Handler) ListResumes(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resumes, err := h.store.ListResumes(c.Request.Context(), uid)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list resumes")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch resumes"})
		return
	}
	if resumes == nil {
		resumes = []*models.ResumeSummary{}
	}

	c.JSON(http.StatusOK, ResumeListResponse{Resumes: resumes})
}

// CreateResume godoc
// @Summary Create a resume
// @Description Create a new resume with a deduplicated slug derived from the title
// @Tags resumes
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Param resume body ResumeRequest true "Resume payload"
// @Success 201 {object} ResumeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /resumes [post]
func (h *Handler) CreateResume(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	slug, err := h.uniqueSlug(c, req.Title, "")
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate slug")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create resume"})
		return
	}

	resume := &models.Resume{
		ID:                uuid.NewString(),
		UserID:            uid,
		Title:             req.Title,
		Slug:              slug,
		Template:          defaultString(req.Template, "modern"),
		Theme:             defaultString(req.Theme, "blue"),
		PersonalInfo:      string(req.PersonalInfo),
		Summary:           req.Summary,
		Experience:        string(req.Experience),
		Education:         string(req.Education),
		Skills:            string(req.Skills),
		Projects:          string(req.Projects),
		IsPublic:          req.IsPublic,
		IncludeGithubData: req.IncludeGithubData == nil || *req.IncludeGithubData,
	}

	if err := h.store.CreateResume(c.Request.Context(), resume); err != nil {
		h.logger.WithError(err).Error("Failed to create resume")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create resume"})
		return
	}

	c.JSON(http.StatusCreated, ResumeResponse{Resume: resume})
}

// GetResume godoc
// @Summary Get a resume
// @Description Return a resume; allowed for its owner or, when public, anyone. A public non-owner read counts a view.
// @Tags resumes
// @Produce json
// @Param X-User-ID header string false "Authenticated user ID"
// @Param id path string true "Resume ID"
// @Success 200 {object} ResumeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /resumes/{id} [get]
func (h *Handler) GetResume(c *gin.Context) {
	uid, _ := userID(c)
	id := c.Param("id")

	resume, err := h.store.GetResume(c.Request.Context(), id)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resume not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get resume")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch resume"})
		return
	}

	if resume.UserID != uid && !resume.IsPublic {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
		return
	}

	// Only a public non-owner read counts as a view.
	if resume.UserID != uid && resume.IsPublic {
		if err := h.store.IncrementResumeViews(c.Request.Context(), id); err != nil {
			h.logger.WithError(err).Warn("Failed to increment resume views")
		} else {
			resume.Views++
		}
	}

	c.JSON(http.StatusOK, ResumeResponse{Resume: resume})
}

// GetPublicResume godoc
// @Summary Get a resume by share slug
// @Description Return a resume through its public share link. Private resumes resolve only for their owner; everyone else sees not found. A non-owner read counts a view.
// @Tags resumes
// @Produce json
// @Param X-User-ID header string false "Authenticated user ID"
// @Param slug path string true "Resume slug"
// @Success 200 {object} ResumeResponse
// @Failure 404 {object} ErrorResponse
// @Router /public/resumes/{slug} [get]
func (h *Handler) GetPublicResume(c *gin.Context) {
	uid, _ := userID(c)
	slug := c.Param("slug")

	resume, err := h.store.GetResumeBySlug(c.Request.Context(), slug)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resume not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get resume by slug")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch resume"})
		return
	}

	// The share link never reveals that a private resume exists.
	if resume.UserID != uid && !resume.IsPublic {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resume not found"})
		return
	}

	if resume.UserID != uid {
		if err := h.store.IncrementResumeViews(c.Request.Context(), resume.ID); err != nil {
			h.logger.WithError(err).Warn("Failed to increment resume views")
		} else {
			resume.Views++
		}
	}

	c.JSON(http.StatusOK, ResumeResponse{Resume: resume})
}

// UpdateResume godoc
// @Summary Update a resume
// @Description Update fields of an owned resume; absent fields are untouched. A changed title regenerates the slug.
// @Tags resumes
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Param id path string true "Resume ID"
// @Param resume body UpdateResumeRequest true "Fields to update"
// @Success 200 {object} ResumeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /resumes/{id} [put]
func (h *Handler) UpdateResume(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	id := c.Param("id")

	var req UpdateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resume, err := h.store.GetResume(c.Request.Context(), id)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resume not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get resume")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update resume"})
		return
	}
	if resume.UserID != uid {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
		return
	}

	if req.Title != nil {
		resume.Title = *req.Title
		// A new title carries its slug along, deduplicated against every
		// other resume. A title that slugifies to the current slug keeps it.
		if slugBase(*req.Title) != resume.Slug {
			slug, err := h.uniqueSlug(c, *req.Title, resume.ID)
			if err != nil {
				h.logger.WithError(err).Error("Failed to regenerate slug")
				c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update resume"})
				return
			}
			resume.Slug = slug
		}
	}
	if req.Template != nil {
		resume.Template = *req.Template
	}
	if req.Theme != nil {
		resume.Theme = *req.Theme
	}
	if req.PersonalInfo != nil {
		resume.PersonalInfo = string(req.PersonalInfo)
	}
	if req.Summary != nil {
		resume.Summary = *req.Summary
	}
	if req.Experience != nil {
		resume.Experience = string(req.Experience)
	}
	if req.Education != nil {
		resume.Education = string(req.Education)
	}
	if req.Skills != nil {
		resume.Skills = string(req.Skills)
	}
	if req.Projects != nil {
		resume.Projects = string(req.Projects)
	}
	if req.IsPublic != nil {
		resume.IsPublic = *req.IsPublic
	}
	if req.IncludeGithubData != nil {
		resume.IncludeGithubData = *req.IncludeGithubData
	}

	if err := h.store.UpdateResume(c.Request.Context(), resume); err != nil {
		h.logger.WithError(err).Error("Failed to update resume")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update resume"})
		return
	}

	c.JSON(http.StatusOK, ResumeResponse{Resume: resume})
}

// DeleteResume godoc
// @Summary Delete a resume
// @Description Delete an owned resume
// @Tags resumes
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Param id path string true "Resume ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /resumes/{id} [delete]
func (h *Handler) DeleteResume(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	id := c.Param("id")

	resume, err := h.store.GetResume(c.Request.Context(), id)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resume not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get resume")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete resume"})
		return
	}
	if resume.UserID != uid {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
		return
	}

	if err := h.store.DeleteResume(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete resume")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete resume"})
		return
	}

	c.Status(http.StatusNoContent)
}

// slugBase slugifies a title, falling back to "resume" for titles with no
// usable characters.
func slugBase(title string) string {
	base := utils.Slugify(title)
	if base == "" {
		base = "resume"
	}
	return base
}

// uniqueSlug slugifies the title and appends -N until the slug is free.
// excludeID keeps a resume from colliding with its own slug on update.
func (h *Handler) uniqueSlug(c *gin.Context, title, excludeID string) (string, error) {
	base := slugBase(title)

	slug := base
	for counter := 1; ; counter++ {
		exists, err := h.store.SlugExists(c.Request.Context(), slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
