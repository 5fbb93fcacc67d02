package config

import "time"

// GitHubConfig holds GitHub-specific configuration
type GitHubConfig struct {
	APIBaseURL     string
	PageSize       int
	RequestTimeout time.Duration
}

// DefaultGitHubConfig returns the default GitHub configuration
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		APIBaseURL:     "https://api.github.com",
		PageSize:       100,
		RequestTimeout: 30 * time.Second,
	}
}
