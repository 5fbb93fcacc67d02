package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/devfolio-app/devfolio/internal/github"
	"github.com/devfolio-app/devfolio/internal/models"
)

const topRepositoryLimit = 10

// RemoteClient is the slice of the GitHub client the aggregator needs.
type RemoteClient interface {
	GetUserProfile(ctx context.Context, login string) (*github.User, error)
	GetUserRepositories(ctx context.Context, login string) ([]github.Repository, error)
	GetLanguageStats(ctx context.Context, repositories []github.Repository) (map[string]float64, error)
	GetRecentActivity(ctx context.Context, login string) ([]github.Event, error)
}

// DaySource produces the per-day activity counts the calendar is built from.
type DaySource func(now time.Time, events []github.Event) []models.ContributionDay

// EventDaySource derives day counts from the fetched public events. The
// events feed only covers recent history, so older days stay at zero.
func EventDaySource(now time.Time, events []github.Event) []models.ContributionDay {
	return RecentContributions(now, EventDayCounts(events, now))
}

// Analytics is the consolidated result of one aggregation run.
type Analytics struct {
	User            *github.User             `json:"user"`
	Repositories    []github.Repository      `json:"repositories"`
	Languages       map[string]float64       `json:"languages"`
	TotalStars      int                      `json:"total_stars"`
	TotalForks      int                      `json:"total_forks"`
	TotalWatchers   int                      `json:"total_watchers"`
	TopRepositories []github.Repository      `json:"top_repositories"`
	RecentActivity  []github.Event           `json:"recent_activity"`
	Calendar        Calendar                 `json:"contribution_calendar"`
	Contributions   []models.ContributionDay `json:"contributions"`
}

// Aggregator combines the remote client's outputs into one Analytics record.
type Aggregator struct {
	client RemoteClient
	logger *logrus.Logger
	days   DaySource
	now    func() time.Time
}

// AggregatorOption allows configuring the aggregator
type AggregatorOption func(*Aggregator)

// WithDaySource overrides the contribution day source.
func WithDaySource(days DaySource) AggregatorOption {
	return func(a *Aggregator) {
		a.days = days
	}
}

// WithClock overrides the aggregator's clock.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates a new aggregator over the given client.
func NewAggregator(client RemoteClient, logger *logrus.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		client: client,
		logger: logger,
		days:   EventDaySource,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildAnalytics fetches and reduces everything for one login. Profile and
// repository failures abort the run; language and activity fetches degrade
// per the client's contract.
func (a *Aggregator) BuildAnalytics(ctx context.Context, login string) (*Analytics, error) {
	var (
		user   *github.User
		repos  []github.Repository
		events []github.Event
	)

	// Profile, repositories and activity have no ordering dependency.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = a.client.GetUserProfile(gctx, login)
		return err
	})
	g.Go(func() error {
		var err error
		repos, err = a.client.GetUserRepositories(gctx, login)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = a.client.GetRecentActivity(gctx, login)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Languages need the repository list; the calendar does not, but both can
	// run side by side once it is known.
	var (
		languages map[string]float64
		days      []models.ContributionDay
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		languages, err = a.client.GetLanguageStats(gctx, repos)
		return err
	})
	g.Go(func() error {
		days = a.days(a.now(), events)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalStars, totalForks, totalWatchers := 0, 0, 0
	for _, repo := range repos {
		totalStars += repo.StargazersCount
		totalForks += repo.ForksCount
		totalWatchers += repo.WatchersCount
	}

	calendar := BuildCalendar(days)

	a.logger.WithFields(logrus.Fields{
		"login":     login,
		"repos":     len(repos),
		"languages": len(languages),
		"stars":     totalStars,
	}).Info("Built analytics")

	return &Analytics{
		User:            user,
		Repositories:    repos,
		Languages:       languages,
		TotalStars:      totalStars,
		TotalForks:      totalForks,
		TotalWatchers:   totalWatchers,
		TopRepositories: topRepositories(repos, topRepositoryLimit),
		RecentActivity:  events,
		Calendar:        calendar,
		Contributions:   calendar.Days,
	}, nil
}

// topRepositories returns up to limit repositories with at least one star,
// descending by star count. Equal star counts keep the input order.
func topRepositories(repos []github.Repository, limit int) []github.Repository {
	top := make([]github.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.StargazersCount > 0 {
			top = append(top, repo)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].StargazersCount > top[j].StargazersCount
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}
