package test

import (
	"context"
	"net/http"
	"strings"

	"github.com/flexora-app/backend/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSignupAndLogin() {
	ctx := context.Background()
	t := s.T()

	email := strings.ToLower(gofakeit.Email())
	password := "super-secret-pw"

	resp := doRequest(ctx, t, "POST", "/a/signup", "", users.SignupRequest{
		Email:       email,
		Password:    password,
		DisplayName: "Signup Tester",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	signupResp := decodeResponse[users.LoginResponse](t, resp)
	require.NotEmpty(t, signupResp.Token)
	require.Equal(t, email, signupResp.User.Email)

	// duplicate signup is rejected
	dupResp := doRequest(ctx, t, "POST", "/a/signup", "", users.SignupRequest{
		Email:       email,
		Password:    password,
		DisplayName: "Signup Tester",
	})
	defer dupResp.Body.Close()
	require.Equal(t, http.StatusConflict, dupResp.StatusCode)

	loginResp := doRequest(ctx, t, "POST", "/a/login", "", users.LoginRequest{
		Email:    email,
		Password: password,
	})
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	login := decodeResponse[users.LoginResponse](t, loginResp)
	require.NotEmpty(t, login.Token)

	// wrong password
	badLoginResp := doRequest(ctx, t, "POST", "/a/login", "", users.LoginRequest{
		Email:    email,
		Password: "not-the-password",
	})
	defer badLoginResp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, badLoginResp.StatusCode)
}

func (s *IntegrationTestSuite) TestGoogleLogin() {
	ctx := context.Background()
	t := s.T()

	resp := doRequest(ctx, t, "POST", "/a/login/google", "", users.GoogleLoginRequest{
		AccessToken: "valid-google-token",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	login := decodeResponse[users.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	require.Equal(t, "google.user@flexora.app", login.User.Email)
	require.Equal(t, "google-id-123", login.User.GoogleID)

	// a second google login resolves to the same user
	resp2 := doRequest(ctx, t, "POST", "/a/login/google", "", users.GoogleLoginRequest{
		AccessToken: "valid-google-token",
	})
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	login2 := decodeResponse[users.LoginResponse](t, resp2)
	require.Equal(t, login.User.ID, login2.User.ID)

	// rejected upstream token
	badResp := doRequest(ctx, t, "POST", "/a/login/google", "", users.GoogleLoginRequest{
		AccessToken: "expired-token",
	})
	defer badResp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, badResp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogout() {
	ctx := context.Background()
	t := s.T()

	token, _ := signupAndLogin(ctx, t)

	meResp := doRequest(ctx, t, "GET", "/users/me", token, nil)
	defer meResp.Body.Close()
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	logoutResp := doRequest(ctx, t, "GET", "/a/logout", token, nil)
	defer logoutResp.Body.Close()
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)

	// the session is gone
	meAgainResp := doRequest(ctx, t, "GET", "/users/me", token, nil)
	defer meAgainResp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, meAgainResp.StatusCode)
}
