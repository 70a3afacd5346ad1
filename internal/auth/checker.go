package auth

import "context"

//go:generate mockgen -source=$GOFILE -destination=checker_mocks.go -package=auth

// Checker answers whose session a given token belongs to.
type Checker interface {
	// SessionUserID returns the user the token belongs to, or
	// ErrNotLoggedIn when the token is unknown or expired.
	SessionUserID(ctx context.Context, token string) (int64, error)
}
