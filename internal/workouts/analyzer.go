package workouts

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/flexora-app/backend/internal/telemetry/tracing"
)

type analyzerRepo interface {
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]WorkoutLog, error)
}

type StatsPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Days      int       `json:"days"`
}

type StatsSummary struct {
	TotalWorkouts             int      `json:"totalWorkouts"`
	TotalCaloriesBurned       int      `json:"totalCaloriesBurned"`
	TotalDurationMinutes      int      `json:"totalDurationMinutes"`
	AverageRating             *float64 `json:"averageRating"`
	AverageCaloriesPerWorkout int      `json:"averageCaloriesPerWorkout"`
	AverageDurationPerWorkout int      `json:"averageDurationPerWorkout"`
}

type DailyStats struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Workouts int     `json:"workouts"`
	Calories float64 `json:"calories"`
	Duration float64 `json:"duration"`
}

type WeeklyStats struct {
	Period         StatsPeriod  `json:"period"`
	Summary        StatsSummary `json:"summary"`
	DailyBreakdown []DailyStats `json:"dailyBreakdown"`
}

type Analyzer struct {
	repo analyzerRepo
}

func NewAnalyzer(repo analyzerRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// WeeklyStats aggregates the user's workouts of the last 7 days: totals,
// per-workout averages, the average rating of rated workouts, and a
// per-day breakdown sorted newest day first.
func (a *Analyzer) WeeklyStats(ctx context.Context, userID int64, now time.Time) (_ *WeeklyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.weeklyStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	endDate := truncateToDay(now).Add(24*time.Hour - time.Millisecond)
	startDate := truncateToDay(now.Add(-7 * 24 * time.Hour))

	logs, err := a.repo.ListRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var totalCalories, totalDuration float64
	var ratingSum float64
	var ratedCount int
	byDay := make(map[string]*DailyStats)
	for _, wl := range logs {
		totalCalories += wl.TotalCaloriesBurned
		totalDuration += wl.TotalDuration
		if wl.WorkoutRating != nil {
			ratingSum += float64(*wl.WorkoutRating)
			ratedCount++
		}

		dateKey := wl.CreatedAt.UTC().Format("2006-01-02")
		daily, ok := byDay[dateKey]
		if !ok {
			daily = &DailyStats{Date: dateKey}
			byDay[dateKey] = daily
		}
		daily.Workouts++
		daily.Calories += wl.TotalCaloriesBurned
		daily.Duration += wl.TotalDuration
	}

	summary := StatsSummary{
		TotalWorkouts:        len(logs),
		TotalCaloriesBurned:  int(math.Round(totalCalories)),
		TotalDurationMinutes: int(math.Round(totalDuration)),
	}
	if ratedCount > 0 {
		avgRating := math.Round(ratingSum/float64(ratedCount)*10) / 10
		summary.AverageRating = &avgRating
	}
	if len(logs) > 0 {
		summary.AverageCaloriesPerWorkout = int(math.Round(totalCalories / float64(len(logs))))
		summary.AverageDurationPerWorkout = int(math.Round(totalDuration / float64(len(logs))))
	}

	dailyBreakdown := make([]DailyStats, 0, len(byDay))
	for _, daily := range byDay {
		dailyBreakdown = append(dailyBreakdown, *daily)
	}
	sort.Slice(dailyBreakdown, func(i, j int) bool {
		return dailyBreakdown[i].Date > dailyBreakdown[j].Date
	})

	return &WeeklyStats{
		Period: StatsPeriod{
			StartDate: startDate,
			EndDate:   endDate,
			Days:      7,
		},
		Summary:        summary,
		DailyBreakdown: dailyBreakdown,
	}, nil
}
