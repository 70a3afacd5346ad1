package test

import (
	"context"
	"net/http"

	"github.com/flexora-app/backend/internal/users"

	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestOnboardingAndProfile() {
	ctx := context.Background()
	t := s.T()

	token, user := signupAndLogin(ctx, t)

	// fresh user has no profile yet
	meResp := doRequest(ctx, t, "GET", "/users/me", token, nil)
	defer meResp.Body.Close()
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	me := decodeResponse[users.User](t, meResp)
	require.Equal(t, user.ID, me.ID)
	require.Nil(t, me.Profile.Age)

	// onboarding without the required attributes fails
	incompleteResp := doRequest(ctx, t, "POST", "/users/onboarding", token, users.Profile{
		Age: intPtr(30),
	})
	defer incompleteResp.Body.Close()
	require.Equal(t, http.StatusBadRequest, incompleteResp.StatusCode)

	completeOnboarding(ctx, t, token)

	// partial update keeps the onboarded values
	updateResp := doRequest(ctx, t, "PUT", "/users/profile", token, users.Profile{
		BodyFatPercentage:  floatPtr(18.5),
		PrimaryWorkoutType: strPtr("strength"),
	})
	defer updateResp.Body.Close()
	require.Equal(t, http.StatusOK, updateResp.StatusCode)

	updated := decodeResponse[users.User](t, updateResp)
	require.NotNil(t, updated.Profile.Age)
	require.Equal(t, 30, *updated.Profile.Age)
	require.NotNil(t, updated.Profile.BodyFatPercentage)
	require.InDelta(t, 18.5, *updated.Profile.BodyFatPercentage, 0.01)
	require.Equal(t, "strength", *updated.Profile.PrimaryWorkoutType)

	// out-of-range values are rejected
	invalidResp := doRequest(ctx, t, "PUT", "/users/profile", token, users.Profile{
		Age: intPtr(-5),
	})
	defer invalidResp.Body.Close()
	require.Equal(t, http.StatusBadRequest, invalidResp.StatusCode)
}
