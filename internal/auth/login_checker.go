package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// LoginChecker resolves session tokens against the sessions kept in redis.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (c *LoginChecker) SessionUserID(ctx context.Context, token string) (int64, error) {
	sessionValue, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotLoggedIn
		}
		return 0, fmt.Errorf("get session: %w", err)
	}

	session, err := parseSession(sessionValue)
	if err != nil {
		return 0, fmt.Errorf("parse session: %w", err)
	}

	if time.Since(session.CreatedAt) > c.ttl {
		return 0, ErrNotLoggedIn
	}

	return session.UserID, nil
}
