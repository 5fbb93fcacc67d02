package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL  = "https://api.github.com"
	defaultPageSize = 100
	defaultTimeout  = 30 * time.Second

	// Public events endpoint caps at 30 per page; one page is enough for the
	// recent-activity feed.
	activityPageSize = 30

	// Cap on in-flight language requests during the per-repo fan-out.
	languageWorkers = 8
)

// Client talks to the GitHub REST API on behalf of one user. It is stateless
// aside from the access token baked into its HTTP client.
type Client struct {
	client   *http.Client
	token    string
	baseURL  string
	pageSize int
	logger   *logrus.Logger
}

// ClientOption allows configuring the client
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests and GHE setups).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithPageSize overrides the repository listing page size.
func WithPageSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// NewClient creates a new GitHub client authenticated with the given token.
// The token is supplied per user by the caller; clients are cheap and one is
// built per sync.
func NewClient(token string, logger *logrus.Logger, opts ...ClientOption) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = defaultTimeout

	client := &Client{
		client:   httpClient,
		token:    token,
		baseURL:  defaultBaseURL,
		pageSize: defaultPageSize,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// get performs a GET against the API and decodes the JSON response into
// result. Timeouts and transport errors surface as RemoteError like any
// non-2xx status.
func (c *Client) get(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return NewRemoteError(0, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewRemoteError(resp.StatusCode, "failed to read response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return NewRemoteError(resp.StatusCode, string(body), nil)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return NewRemoteError(resp.StatusCode, "failed to decode response", err)
		}
	}

	return nil
}

// GetUserProfile fetches the profile for a GitHub login. A single request, no
// retry; any failure is fatal to the caller's pipeline.
func (c *Client) GetUserProfile(ctx context.Context, login string) (*User, error) {
	if login == "" {
		return nil, NewValidationError("login", "cannot be empty")
	}

	var user User
	url := fmt.Sprintf("%s/users/%s", c.baseURL, login)
	if err := c.get(ctx, url, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserRepositories fetches all repositories owned by the login, paging
// until a short page. If any page request fails the whole listing fails; no
// partial result is returned.
func (c *Client) GetUserRepositories(ctx context.Context, login string) ([]Repository, error) {
	if login == "" {
		return nil, NewValidationError("login", "cannot be empty")
	}

	var repositories []Repository
	page := 1

	for {
		url := fmt.Sprintf("%s/users/%s/repos?type=owner&sort=updated&per_page=%d&page=%d",
			c.baseURL, login, c.pageSize, page)

		var repos []Repository
		if err := c.get(ctx, url, &repos); err != nil {
			return nil, err
		}

		repositories = append(repositories, repos...)

		if len(repos) < c.pageSize {
			break
		}
		page++
	}

	c.logger.WithFields(logrus.Fields{
		"login": login,
		"repos": len(repositories),
		"pages": page,
	}).Debug("Fetched repository listing")

	return repositories, nil
}

// GetLanguageStats fetches the language byte histogram of every repository
// and reduces the totals to percentages rounded to two decimal places. A
// failed request skips that repository and is logged, never propagated; with
// no bytes at all the result is an empty map.
func (c *Client) GetLanguageStats(ctx context.Context, repositories []Repository) (map[string]float64, error) {
	type repoLanguages struct {
		languages map[string]int64
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []repoLanguages
	)
	sem := make(chan struct{}, languageWorkers)

	for _, repo := range repositories {
		wg.Add(1)
		go func(repo Repository) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var languages map[string]int64
			url := fmt.Sprintf("%s/repos/%s/languages", c.baseURL, repo.FullName)
			if err := c.get(ctx, url, &languages); err != nil {
				c.logger.WithError(err).WithField("repo", repo.FullName).
					Warn("Failed to fetch languages, skipping repository")
				return
			}

			mu.Lock()
			results = append(results, repoLanguages{languages: languages})
			mu.Unlock()
		}(repo)
	}
	wg.Wait()

	byteTotals := make(map[string]int64)
	var totalBytes int64
	for _, r := range results {
		for language, bytes := range r.languages {
			byteTotals[language] += bytes
			totalBytes += bytes
		}
	}

	percentages := make(map[string]float64)
	if totalBytes == 0 {
		return percentages, nil
	}
	for language, bytes := range byteTotals {
		percentages[language] = math.Round(float64(bytes)/float64(totalBytes)*100*100) / 100
	}

	return percentages, nil
}

// GetRecentActivity fetches the user's recent public events. Best-effort: on
// failure it logs and returns an empty slice so the caller's pipeline keeps
// going.
func (c *Client) GetRecentActivity(ctx context.Context, login string) ([]Event, error) {
	if login == "" {
		return nil, NewValidationError("login", "cannot be empty")
	}

	var events []Event
	url := fmt.Sprintf("%s/users/%s/events/public?per_page=%d", c.baseURL, login, activityPageSize)
	if err := c.get(ctx, url, &events); err != nil {
		c.logger.WithError(err).WithField("login", login).
			Warn("Failed to fetch recent activity")
		return []Event{}, nil
	}

	return events, nil
}
