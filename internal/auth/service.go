package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	sessionKeyPrefix = "flexora-session||"
	sessionsSetKey   = "flexora-sessions"

	// session tokens older than this are considered expired
	DefaultSessionTTL = 7 * 24 * time.Hour
)

var ErrNotLoggedIn = errors.New("not logged in")

// Session is a logged-in user session, stored in redis as
// "<userID>|<createdAtUnix>" under the session token key.
type Session struct {
	UserID    int64
	CreatedAt time.Time
}

type Service struct {
	redisClient *redis.Client
	ttl         time.Duration

	// RandStringFunc can be replaced in tests for deterministic tokens
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(redisClient *redis.Client) *Service {
	return &Service{
		redisClient:    redisClient,
		ttl:            DefaultSessionTTL,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// CreateSession stores a new session for the given user and returns the
// session token the client should send back in the X-FLEXORA-AUTH header.
func (s *Service) CreateSession(ctx context.Context, userID int64, createdAt time.Time) (token string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.createSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token, err = s.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	sessionValue := fmt.Sprintf("%d|%d", userID, createdAt.Unix())
	if err := s.redisClient.Set(ctx, sessionKeyPrefix+token, sessionValue, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := s.redisClient.SAdd(ctx, sessionsSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("add session token to sessions set: %w", err)
	}

	log.Tracef("new session created for user %d", userID)

	return token, nil
}

// GetSession returns the session stored for the given token, or
// ErrNotLoggedIn if the token is unknown or the session has expired.
func (s *Service) GetSession(ctx context.Context, token string) (*Session, error) {
	sessionValue, err := s.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	session, err := parseSession(sessionValue)
	if err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	if time.Since(session.CreatedAt) > s.ttl {
		return nil, ErrNotLoggedIn
	}

	return session, nil
}

// Logout removes the session for the given token. Returns false when no
// such session existed in the first place.
func (s *Service) Logout(ctx context.Context, token string) (loggedOut bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	removed, err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("remove session: %w", err)
	}
	if err := s.redisClient.SRem(ctx, sessionsSetKey, token).Err(); err != nil {
		return false, fmt.Errorf("remove session token from sessions set: %w", err)
	}

	return removed > 0, nil
}

// ScanAndClean walks over all known session tokens and removes the ones
// whose sessions expired or disappeared. Meant to be run periodically.
func (s *Service) ScanAndClean(ctx context.Context) {
	log.Debugln("auth service, scan and clean sessions ...")

	tokens, err := s.redisClient.SMembers(ctx, sessionsSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean: get session tokens: %s", err)
		return
	}

	var cleaned int
	for _, token := range tokens {
		if ctx.Err() != nil {
			log.Warnf("auth service, scan and clean aborted: %s", ctx.Err())
			return
		}

		sessionValue, err := s.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Errorf("auth service, scan and clean, get session [%s]: %s", token, err)
			continue
		}

		expired := errors.Is(err, redis.Nil)
		if !expired {
			session, err := parseSession(sessionValue)
			if err != nil {
				log.Errorf("auth service, scan and clean, parse session [%s]: %s", token, err)
				expired = true
			} else {
				expired = time.Since(session.CreatedAt) > s.ttl
			}
		}

		if !expired {
			continue
		}

		if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("auth service, scan and clean, remove session [%s]: %s", token, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, sessionsSetKey, token).Err(); err != nil {
			log.Errorf("auth service, scan and clean, remove session token [%s]: %s", token, err)
			continue
		}
		cleaned++
	}

	log.Debugf("auth service, scan and clean done, sessions removed: %d", cleaned)
}

func parseSession(sessionValue string) (*Session, error) {
	parts := strings.SplitN(sessionValue, "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed session value")
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session timestamp: %w", err)
	}
	return &Session{
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}
