package models

import "time"

// Resume is a stored resume document. The structured sections (personal info,
// experience, education, skills, projects) are JSON text columns; the editor
// owns their shape and this service stores them opaquely.
type Resume struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Template string `json:"template"`
	Theme    string `json:"theme"`

	PersonalInfo string `json:"personal_info,omitempty"`
	Summary      string `json:"summary,omitempty"`
	Experience   string `json:"experience,omitempty"`
	Education    string `json:"education,omitempty"`
	Skills       string `json:"skills,omitempty"`
	Projects     string `json:"projects,omitempty"`

	IsPublic          bool `json:"is_public"`
	IncludeGithubData bool `json:"include_github_data"`
	Views             int  `json:"views"`
	Downloads         int  `json:"downloads"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResumeSummary is the list-view projection of a resume, without the section
// blobs.
type ResumeSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Template  string    `json:"template"`
	Theme     string    `json:"theme"`
	IsPublic  bool      `json:"is_public"`
	Views     int       `json:"views"`
	Downloads int       `json:"downloads"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
