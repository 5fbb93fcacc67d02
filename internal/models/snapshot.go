package models

import (
	"encoding/json"
	"time"

	"github.com/devfolio-app/devfolio/internal/github"
)

// Sync status values for an AnalyticsSnapshot.
const (
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

// ContributionDay is one day in the contribution calendar. Level is a
// 0-4 bucket derived from Count and is what the heatmap renders.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// AnalyticsSnapshot is the persisted analytics record for one user. There is
// at most one row per user; every sync overwrites it wholesale. The nested
// repository list, language map and contribution sequence are stored as JSON
// text columns and exposed through the accessor pairs below.
type AnalyticsSnapshot struct {
	ID     int    `json:"-"`
	UserID string `json:"user_id"`

	PublicRepos int `json:"public_repos"`
	PublicGists int `json:"public_gists"`
	Followers   int `json:"followers"`
	Following   int `json:"following"`

	Repositories  string `json:"-"`
	Languages     string `json:"-"`
	Contributions string `json:"-"`

	TotalStars    int `json:"total_stars"`
	TotalForks    int `json:"total_forks"`
	TotalWatchers int `json:"total_watchers"`

	SyncStatus string    `json:"sync_status"`
	LastSyncAt time.Time `json:"last_sync_at"`
	LastError  string    `json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetRepositories serializes the repository list into the snapshot.
func (s *AnalyticsSnapshot) SetRepositories(repos []github.Repository) error {
	data, err := json.Marshal(repos)
	if err != nil {
		return err
	}
	s.Repositories = string(data)
	return nil
}

// GetRepositories deserializes the stored repository list. An empty column
// yields an empty slice.
func (s *AnalyticsSnapshot) GetRepositories() ([]github.Repository, error) {
	if s.Repositories == "" {
		return []github.Repository{}, nil
	}
	var repos []github.Repository
	if err := json.Unmarshal([]byte(s.Repositories), &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// SetLanguages serializes the language-percentage map into the snapshot.
func (s *AnalyticsSnapshot) SetLanguages(languages map[string]float64) error {
	data, err := json.Marshal(languages)
	if err != nil {
		return err
	}
	s.Languages = string(data)
	return nil
}

// GetLanguages deserializes the stored language-percentage map.
func (s *AnalyticsSnapshot) GetLanguages() (map[string]float64, error) {
	if s.Languages == "" {
		return map[string]float64{}, nil
	}
	var languages map[string]float64
	if err := json.Unmarshal([]byte(s.Languages), &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// SetContributions serializes the contribution day sequence into the snapshot.
func (s *AnalyticsSnapshot) SetContributions(days []ContributionDay) error {
	data, err := json.Marshal(days)
	if err != nil {
		return err
	}
	s.Contributions = string(data)
	return nil
}

// GetContributions deserializes the stored contribution day sequence.
func (s *AnalyticsSnapshot) GetContributions() ([]ContributionDay, error) {
	if s.Contributions == "" {
		return []ContributionDay{}, nil
	}
	var days []ContributionDay
	if err := json.Unmarshal([]byte(s.Contributions), &days); err != nil {
		return nil, err
	}
	return days, nil
}
