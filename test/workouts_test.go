package test

import (
	"context"
	"net/http"

	"github.com/flexora-app/backend/internal/workouts"

	"github.com/stretchr/testify/require"
)

func benchPressWorkout() workouts.WorkoutLog {
	return workouts.WorkoutLog{
		Exercises: []workouts.ExerciseEntry{
			{
				Name: "Bench Press",
				Sets: []workouts.ExerciseSet{
					{Reps: 8, WeightKg: floatPtr(60)},
					{Reps: 8, WeightKg: floatPtr(60)},
					{Reps: 7, WeightKg: floatPtr(60)},
				},
			},
		},
		TotalCaloriesBurned: 250,
		TotalDuration:       45,
		WorkoutRating:       intPtr(4),
	}
}

func (s *IntegrationTestSuite) TestLogWorkout() {
	ctx := context.Background()
	t := s.T()

	token, _ := signupAndLogin(ctx, t)

	resp := doRequest(ctx, t, "POST", "/workouts", token, benchPressWorkout())
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	logged := decodeResponse[workouts.LogWorkoutResponse](t, resp)
	require.NotZero(t, logged.WorkoutLog.ID)
	require.Len(t, logged.WorkoutLog.Exercises, 1)

	// first ever workout starts the streak and earns points
	require.Equal(t, 1, logged.Gamification.CurrentStreak)
	require.Equal(t, 1, logged.Gamification.LongestStreak)
	require.Equal(t, workouts.PointsPerWorkout, logged.Gamification.LeaderboardScore)
	require.Equal(t, workouts.PointsPerWorkout, logged.Gamification.PointsEarned)

	// a second workout the same day keeps the streak, score grows
	resp2 := doRequest(ctx, t, "POST", "/workouts", token, benchPressWorkout())
	defer resp2.Body.Close()
	require.Equal(t, http.StatusCreated, resp2.StatusCode)

	logged2 := decodeResponse[workouts.LogWorkoutResponse](t, resp2)
	require.Equal(t, 1, logged2.Gamification.CurrentStreak)
	require.Equal(t, 2*workouts.PointsPerWorkout, logged2.Gamification.LeaderboardScore)
}

func (s *IntegrationTestSuite) TestLogWorkout_invalid() {
	ctx := context.Background()
	t := s.T()

	token, _ := signupAndLogin(ctx, t)

	// no exercises
	resp := doRequest(ctx, t, "POST", "/workouts", token, workouts.WorkoutLog{
		TotalDuration: 30,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// rating out of range
	invalid := benchPressWorkout()
	invalid.WorkoutRating = intPtr(9)
	resp2 := doRequest(ctx, t, "POST", "/workouts", token, invalid)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)

	// unauthenticated
	resp3 := doRequest(ctx, t, "POST", "/workouts", "", benchPressWorkout())
	defer resp3.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp3.StatusCode)
}

func (s *IntegrationTestSuite) TestListWorkouts() {
	ctx := context.Background()
	t := s.T()

	token, _ := signupAndLogin(ctx, t)

	for range [3]struct{}{} {
		resp := doRequest(ctx, t, "POST", "/workouts", token, benchPressWorkout())
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	listResp := doRequest(ctx, t, "GET", "/workouts/history/page/1/size/2", token, nil)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	list := decodeResponse[workouts.ListResponse](t, listResp)
	require.Equal(t, 3, list.Total)
	require.Len(t, list.Workouts, 2)
}

func (s *IntegrationTestSuite) TestWeeklyStats() {
	ctx := context.Background()
	t := s.T()

	token, _ := signupAndLogin(ctx, t)

	resp := doRequest(ctx, t, "POST", "/workouts", token, benchPressWorkout())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	statsResp := doRequest(ctx, t, "GET", "/stats/weekly", token, nil)
	defer statsResp.Body.Close()
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	stats := decodeResponse[workouts.WeeklyStats](t, statsResp)
	require.Equal(t, 1, stats.Summary.TotalWorkouts)
	require.Equal(t, 250, stats.Summary.TotalCaloriesBurned)
	require.Len(t, stats.DailyBreakdown, 1)
}
