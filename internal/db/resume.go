package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devfolio-app/devfolio/internal/models"
)

// ListResumes retrieves the resume summaries for a user, most recently
// updated first.
func (s *PostgresStore) ListResumes(ctx context.Context, userID string) ([]*models.ResumeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug, template, theme, is_public, views, downloads, created_at, updated_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []*models.ResumeSummary
	for rows.Next() {
		var r models.ResumeSummary
		if err := rows.Scan(
			&r.ID,
			&r.Title,
			&r.Slug,
			&r.Template,
			&r.Theme,
			&r.IsPublic,
			&r.Views,
			&r.Downloads,
			&r.CreatedAt,
			&r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resumes: %w", err)
	}

	return resumes, nil
}

// CreateResume inserts a new resume.
func (s *PostgresStore) CreateResume(ctx context.Context, resume *models.Resume) error {
	if resume == nil {
		return fmt.Errorf("resume cannot be nil")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resumes (
			id, user_id, title, slug, template, theme,
			personal_info, summary, experience, education, skills, projects,
			is_public, include_github_data, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.Slug,
		resume.Template,
		resume.Theme,
		resume.PersonalInfo,
		resume.Summary,
		resume.Experience,
		resume.Education,
		resume.Skills,
		resume.Projects,
		resume.IsPublic,
		resume.IncludeGithubData,
	)

	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// GetResume retrieves a resume by id.
func (s *PostgresStore) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	var r models.Resume

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, slug, template, theme,
			personal_info, summary, experience, education, skills, projects,
			is_public, include_github_data, views, downloads, created_at, updated_at
		FROM resumes
		WHERE id = $1
	`, id).Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Slug,
		&r.Template,
		&r.Theme,
		&r.PersonalInfo,
		&r.Summary,
		&r.Experience,
		&r.Education,
		&r.Skills,
		&r.Projects,
		&r.IsPublic,
		&r.IncludeGithubData,
		&r.Views,
		&r.Downloads,
		&r.CreatedAt,
		&r.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	return &r, nil
}

// GetResumeBySlug retrieves a resume by its share slug.
func (s *PostgresStore) GetResumeBySlug(ctx context.Context, slug string) (*models.Resume, error) {
	var r models.Resume

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, slug, template, theme,
			personal_info, summary, experience, education, skills, projects,
			is_public, include_github_data, views, downloads, created_at, updated_at
		FROM resumes
		WHERE slug = $1
	`, slug).Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Slug,
		&r.Template,
		&r.Theme,
		&r.PersonalInfo,
		&r.Summary,
		&r.Experience,
		&r.Education,
		&r.Skills,
		&r.Projects,
		&r.IsPublic,
		&r.IncludeGithubData,
		&r.Views,
		&r.Downloads,
		&r.CreatedAt,
		&r.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resume slug %s: %w", slug, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get resume by slug: %w", err)
	}

	return &r, nil
}

// UpdateResume replaces the mutable fields of a resume.
func (s *PostgresStore) UpdateResume(ctx context.Context, resume *models.Resume) error {
	if resume == nil {
		return fmt.Errorf("resume cannot be nil")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE resumes SET
			title = $2,
			slug = $3,
			template = $4,
			theme = $5,
			personal_info = $6,
			summary = $7,
			experience = $8,
			education = $9,
			skills = $10,
			projects = $11,
			is_public = $12,
			include_github_data = $13,
			updated_at = NOW()
		WHERE id = $1
	`,
		resume.ID,
		resume.Title,
		resume.Slug,
		resume.Template,
		resume.Theme,
		resume.PersonalInfo,
		resume.Summary,
		resume.Experience,
		resume.Education,
		resume.Skills,
		resume.Projects,
		resume.IsPublic,
		resume.IncludeGithubData,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("resume %s: %w", resume.ID, ErrNotFound)
	}

	return nil
}

// DeleteResume removes a resume by id.
func (s *PostgresStore) DeleteResume(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}

	return nil
}

// IncrementResumeViews bumps the view counter for a public read.
func (s *PostgresStore) IncrementResumeViews(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE resumes SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// SlugExists reports whether a resume slug is already taken by a resume
// other than excludeID. Pass an empty excludeID when creating.
func (s *PostgresStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM resumes WHERE slug = $1 AND id::text <> $2)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}
