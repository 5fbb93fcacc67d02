package models

import "time"

// UserAccount links an application user to their GitHub identity. Rows are
// written by the external auth collaborator when the user connects GitHub;
// this service only reads them to resolve the login and access token for a
// sync.
type UserAccount struct {
	UserID      string    `json:"user_id"`
	GithubLogin string    `json:"github_login"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
