package auth

import "context"

// LoginTestChecker is a Checker for tests, resolving tokens from a
// plain in-memory map.
type LoginTestChecker struct {
	TokenToUserID map[string]int64
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		TokenToUserID: map[string]int64{},
	}
}

func (c *LoginTestChecker) SessionUserID(_ context.Context, token string) (int64, error) {
	userID, ok := c.TokenToUserID[token]
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}
