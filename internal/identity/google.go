package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flexora-app/backend/internal/telemetry/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	oauth2api "google.golang.org/api/oauth2/v2"
)

// ErrInvalidToken is returned when Google rejects the access token.
var ErrInvalidToken = errors.New("invalid google access token")

//go:generate mockgen -source=$GOFILE -destination=google_mocks.go -package=identity

// Verifier resolves a Google OAuth access token to the identity of its owner.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*GoogleUserInfo, error)
}

// GoogleUserInfo is the subset of the Google userinfo endpoint response
// we care about.
type GoogleUserInfo struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

type GoogleVerifier struct {
	userinfoURL string
	httpClient  *http.Client
}

func NewGoogleVerifier(userinfoURL string) *GoogleVerifier {
	return &GoogleVerifier{
		userinfoURL: userinfoURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, accessToken string) (userInfo *GoogleUserInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.googleVerify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call userinfo endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var info oauth2api.Userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("userinfo response without email")
	}

	return &GoogleUserInfo{
		GoogleID: info.Id,
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
	}, nil
}
