package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/internal/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Entry is the public slice of a user shown on the leaderboard.
type Entry struct {
	DisplayName      string `json:"displayName"`
	ProfileImage     string `json:"profileImage,omitempty"`
	LeaderboardScore int    `json:"leaderboardScore"`
	CurrentStreak    int    `json:"currentStreak"`
}

// Rank is a user's own standing.
type Rank struct {
	Rank          int `json:"rank"`
	TotalUsers    int `json:"totalUsers"`
	Score         int `json:"score"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Top returns the highest-scoring users, best first.
func (r *Repo) Top(ctx context.Context, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.top")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT display_name, profile_image, leaderboard_score, current_streak
			FROM fitness_user
			ORDER BY leaderboard_score DESC, id ASC
			LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var profileImage *string
		if err := rows.Scan(&entry.DisplayName, &profileImage, &entry.LeaderboardScore, &entry.CurrentStreak); err != nil {
			return nil, err
		}
		if profileImage != nil {
			entry.ProfileImage = *profileImage
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// UserRank returns the user's standing: 1 plus the number of users with
// a strictly higher score.
func (r *Repo) UserRank(ctx context.Context, userID int64) (_ *Rank, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.userRank")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))

	var rank Rank
	err = r.db.QueryRow(
		ctx,
		`SELECT
				u.leaderboard_score, u.current_streak, u.longest_streak,
				(SELECT COUNT(*) FROM fitness_user WHERE leaderboard_score > u.leaderboard_score) + 1,
				(SELECT COUNT(*) FROM fitness_user)
			FROM fitness_user u
			WHERE u.id = $1;`,
		userID,
	).Scan(&rank.Score, &rank.CurrentStreak, &rank.LongestStreak, &rank.Rank, &rank.TotalUsers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user rank: %w", err)
	}

	return &rank, nil
}
