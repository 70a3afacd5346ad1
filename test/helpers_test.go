package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/flexora-app/backend/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

// signupAndLogin registers a fresh random user and returns the session
// token together with the created user.
func signupAndLogin(ctx context.Context, t *testing.T) (string, *users.User) {
	email := strings.ToLower(gofakeit.Email())
	password := gofakeit.Password(true, true, true, false, false, 12)

	signupReq := users.SignupRequest{
		Email:       email,
		Password:    password,
		DisplayName: gofakeit.Name(),
	}
	resp := doRequest(ctx, t, "POST", "/a/signup", "", signupReq)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loginResp := decodeResponse[users.LoginResponse](t, resp)
	require.NotEmpty(t, loginResp.Token)
	require.NotNil(t, loginResp.User)

	return loginResp.Token, loginResp.User
}

// completeOnboarding submits the minimum complete profile for the user.
func completeOnboarding(ctx context.Context, t *testing.T, token string) {
	profile := users.Profile{
		Age:      intPtr(30),
		Gender:   strPtr("male"),
		WeightKg: floatPtr(80),
		HeightM:  floatPtr(1.82),
	}
	resp := doRequest(ctx, t, "POST", "/users/onboarding", token, profile)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func doRequest(ctx context.Context, t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", serverEndpoint, path), reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(users.AuthTokenHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse[T any](t *testing.T, resp *http.Response) *T {
	t.Helper()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var decoded T
	require.NoError(t, json.Unmarshal(respBytes, &decoded))
	return &decoded
}
