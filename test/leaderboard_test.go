package test

import (
	"context"
	"net/http"

	"github.com/flexora-app/backend/internal/leaderboard"

	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLeaderboard() {
	ctx := context.Background()
	t := s.T()

	grinderToken, grinder := signupAndLogin(ctx, t)
	slackerToken, _ := signupAndLogin(ctx, t)

	// grinder logs two workouts, slacker one
	for range [2]struct{}{} {
		resp := doRequest(ctx, t, "POST", "/workouts", grinderToken, benchPressWorkout())
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := doRequest(ctx, t, "POST", "/workouts", slackerToken, benchPressWorkout())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// the board is public
	boardResp := doRequest(ctx, t, "GET", "/leaderboard", "", nil)
	defer boardResp.Body.Close()
	require.Equal(t, http.StatusOK, boardResp.StatusCode)

	board := decodeResponse[leaderboard.BoardResponse](t, boardResp)
	require.NotEmpty(t, board.Entries)

	// scores are sorted, best first
	for i := 1; i < len(board.Entries); i++ {
		require.GreaterOrEqual(t,
			board.Entries[i-1].LeaderboardScore,
			board.Entries[i].LeaderboardScore,
		)
	}

	foundGrinder := false
	for _, entry := range board.Entries {
		if entry.DisplayName == grinder.DisplayName {
			foundGrinder = true
			require.Equal(t, 20, entry.LeaderboardScore)
		}
	}
	require.True(t, foundGrinder)

	// own rank needs a session
	unauthedRankResp := doRequest(ctx, t, "GET", "/leaderboard/rank", "", nil)
	defer unauthedRankResp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, unauthedRankResp.StatusCode)

	rankResp := doRequest(ctx, t, "GET", "/leaderboard/rank", grinderToken, nil)
	defer rankResp.Body.Close()
	require.Equal(t, http.StatusOK, rankResp.StatusCode)

	rank := decodeResponse[leaderboard.Rank](t, rankResp)
	require.Equal(t, 20, rank.Score)
	require.GreaterOrEqual(t, rank.TotalUsers, 2)
	require.GreaterOrEqual(t, rank.Rank, 1)
	require.Equal(t, 1, rank.CurrentStreak)
}
