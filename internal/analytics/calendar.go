package analytics

import (
	"sort"
	"time"

	"github.com/devfolio-app/devfolio/internal/github"
	"github.com/devfolio-app/devfolio/internal/models"
)

const dateLayout = "2006-01-02"

// MonthLabel marks the week index at which a month begins in the calendar
// grid.
type MonthLabel struct {
	Name      string `json:"name"`
	WeekIndex int    `json:"week_index"`
}

// Calendar is the laid-out contribution heatmap: a gap-free day sequence
// whose length is always a multiple of seven, Sunday-first.
type Calendar struct {
	Days   []models.ContributionDay `json:"days"`
	Weeks  int                      `json:"weeks"`
	Months []MonthLabel             `json:"months"`
	Total  int                      `json:"total"`
}

// LevelFor buckets a daily activity count into the 0-4 heatmap intensity.
func LevelFor(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count <= 6:
		return 3
	default:
		return 4
	}
}

// EventDayCounts tallies public events per calendar day, dropping anything
// outside the trailing one-year window ending at now. Event timestamps are
// converted to now's location first so the day keys match the dates
// RecentContributions iterates.
func EventDayCounts(events []github.Event, now time.Time) map[string]int {
	oneYearAgo := time.Date(now.Year()-1, now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	counts := make(map[string]int)
	for _, ev := range events {
		created := ev.CreatedAt.In(now.Location())
		if created.Before(oneYearAgo) || created.After(now) {
			continue
		}
		counts[created.Format(dateLayout)]++
	}
	return counts
}

// RecentContributions produces one entry per day over the trailing one-year
// window ending at now, looking counts up in the supplied map and defaulting
// to zero.
func RecentContributions(now time.Time, counts map[string]int) []models.ContributionDay {
	oneYearAgo := time.Date(now.Year()-1, now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var days []models.ContributionDay
	for d := oneYearAgo; !d.After(now); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		count := counts[date]
		days = append(days, models.ContributionDay{
			Date:  date,
			Count: count,
			Level: LevelFor(count),
		})
	}
	return days
}

// BuildCalendar lays an unordered day sequence out as calendar weeks: sorted
// ascending, aligned to the Sunday on or before the earliest date, missing
// days backfilled with zero counts, and the final week padded to seven days
// past the last real date. Month labels mark every week whose first day
// starts a new month; week zero is always labeled.
func BuildCalendar(days []models.ContributionDay) Calendar {
	if len(days) == 0 {
		return Calendar{Days: []models.ContributionDay{}, Months: []MonthLabel{}}
	}

	sorted := make([]models.ContributionDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	byDate := make(map[string]models.ContributionDay, len(sorted))
	total := 0
	for _, d := range sorted {
		byDate[d.Date] = d
		total += d.Count
	}

	first, err := time.Parse(dateLayout, sorted[0].Date)
	if err != nil {
		return Calendar{Days: []models.ContributionDay{}, Months: []MonthLabel{}}
	}
	last, err := time.Parse(dateLayout, sorted[len(sorted)-1].Date)
	if err != nil {
		return Calendar{Days: []models.ContributionDay{}, Months: []MonthLabel{}}
	}

	// Back up to the Sunday that starts the first week.
	start := first.AddDate(0, 0, -int(first.Weekday()))

	var grid []models.ContributionDay
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		if day, ok := byDate[date]; ok {
			grid = append(grid, day)
		} else {
			grid = append(grid, models.ContributionDay{Date: date, Count: 0, Level: 0})
		}
	}

	// Pad the trailing partial week with zero-count days following the last
	// real date.
	for next := last.AddDate(0, 0, 1); len(grid)%7 != 0; next = next.AddDate(0, 0, 1) {
		grid = append(grid, models.ContributionDay{
			Date:  next.Format(dateLayout),
			Count: 0,
			Level: 0,
		})
	}

	weeks := len(grid) / 7
	months := make([]MonthLabel, 0, 13)
	var prevMonth time.Month
	for w := 0; w < weeks; w++ {
		firstDay, err := time.Parse(dateLayout, grid[w*7].Date)
		if err != nil {
			continue
		}
		if w == 0 || firstDay.Month() != prevMonth {
			months = append(months, MonthLabel{
				Name:      firstDay.Format("Jan"),
				WeekIndex: w,
			})
		}
		prevMonth = firstDay.Month()
	}

	return Calendar{
		Days:   grid,
		Weeks:  weeks,
		Months: months,
		Total:  total,
	}
}
