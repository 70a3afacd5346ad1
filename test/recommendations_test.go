package test

import (
	"context"
	"net/http"

	"github.com/flexora-app/backend/internal/recommendations"

	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRecommendations() {
	ctx := context.Background()
	t := s.T()

	token, _ := signupAndLogin(ctx, t)

	// profile has to be complete first
	earlyResp := doRequest(ctx, t, "POST", "/recommendations", token, recommendations.RecommendRequest{})
	defer earlyResp.Body.Close()
	require.Equal(t, http.StatusBadRequest, earlyResp.StatusCode)

	completeOnboarding(ctx, t, token)

	// bench press history makes the first recommendation weight-progressed
	workoutResp := doRequest(ctx, t, "POST", "/workouts", token, benchPressWorkout())
	require.Equal(t, http.StatusCreated, workoutResp.StatusCode)
	workoutResp.Body.Close()

	resp := doRequest(ctx, t, "POST", "/recommendations", token, recommendations.RecommendRequest{
		MealType: "lunch",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	recommended := decodeResponse[recommendations.Response](t, resp)
	require.InDelta(t, 23.1, recommended.BMI, 0.01)
	require.Len(t, recommended.ExerciseRecommendations, 2)

	benchPress := recommended.ExerciseRecommendations[0]
	require.Equal(t, "Bench Press", benchPress.ExerciseName)
	require.True(t, benchPress.HasHistory)
	require.Equal(t, "weight", benchPress.Progression)
	require.Equal(t, 3, benchPress.Sets)
	require.NotNil(t, benchPress.RecommendedWeight)
	require.InDelta(t, 62.5, *benchPress.RecommendedWeight, 0.01)
	require.NotNil(t, benchPress.LastWeight)
	require.InDelta(t, 60, *benchPress.LastWeight, 0.01)

	// never trained before, plain baseline
	pushUps := recommended.ExerciseRecommendations[1]
	require.Equal(t, "Push-ups", pushUps.ExerciseName)
	require.False(t, pushUps.HasHistory)
	require.Equal(t, 3, pushUps.Sets)
	require.Equal(t, 12, pushUps.Reps)
}
