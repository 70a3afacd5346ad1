package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/internal/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const workoutColumns = `
	id, user_id, exercises, total_calories_burned, total_duration,
	workout_rating, workout_notes, created_at`

type ListParams struct {
	UserID int64
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add inserts the workout log and applies the gamification ledger
// update to the user row in a single transaction. The user row is
// locked for the duration, concurrent logs for the same user are
// serialized and either both writes land or neither does.
func (r *Repo) Add(ctx context.Context, workout WorkoutLog) (_ *WorkoutLog, _ *LedgerUpdate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", workout.UserID))

	exercisesJson, err := json.Marshal(workout.Exercises)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal exercises: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = multierr.Append(err, rbErr)
			}
		}
	}()

	var ledger Ledger
	err = tx.QueryRow(
		ctx,
		`SELECT current_streak, longest_streak, last_workout_date, leaderboard_score
			FROM fitness_user WHERE id = $1 FOR UPDATE;`,
		workout.UserID,
	).Scan(&ledger.CurrentStreak, &ledger.LongestStreak, &ledger.LastWorkoutDate, &ledger.LeaderboardScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, users.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("lock user row: %w", err)
	}

	// submission instant, callers cannot backdate workouts
	workout.CreatedAt = time.Now()

	var workoutNotes *string
	if workout.WorkoutNotes != "" {
		workoutNotes = &workout.WorkoutNotes
	}

	err = tx.QueryRow(
		ctx,
		`INSERT INTO workout_log
				(user_id, exercises, total_calories_burned, total_duration, workout_rating, workout_notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		workout.UserID, exercisesJson, workout.TotalCaloriesBurned, workout.TotalDuration,
		workout.WorkoutRating, workoutNotes, workout.CreatedAt,
	).Scan(&workout.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("insert workout log: %w", err)
	}

	update := UpdateLedger(ledger, workout.CreatedAt)

	if _, err = tx.Exec(
		ctx,
		`UPDATE fitness_user SET
				current_streak = $1, longest_streak = $2, last_workout_date = $3, leaderboard_score = $4
			WHERE id = $5;`,
		update.CurrentStreak, update.LongestStreak, update.LastWorkoutDate, update.LeaderboardScore,
		workout.UserID,
	); err != nil {
		return nil, nil, fmt.Errorf("update gamification ledger: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int64("workout.id", workout.ID))

	return &workout, &update, nil
}

func (r *Repo) Get(ctx context.Context, userID, workoutID int64) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+` FROM workout_log WHERE id = $1 AND user_id = $2;`,
		workoutID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	logs, err := r.rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if len(logs) != 1 {
		return nil, ErrWorkoutNotFound
	}
	return &logs[0], nil
}

// List returns the given PAGE of the user's workout history, newest
// first, together with the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []WorkoutLog, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.Count(ctx, params.UserID)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}
	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+` FROM workout_log
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
			OFFSET $3;`,
		params.UserID, limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	logs, err := r.rows2workouts(rows)
	if err != nil {
		return nil, -1, err
	}
	return logs, countAll, nil
}

// ListRange returns all of the user's workouts within [from, to],
// newest first.
func (r *Repo) ListRange(ctx context.Context, userID int64, from, to time.Time) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+` FROM workout_log
			WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
			ORDER BY created_at DESC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2workouts(rows)
}

func (r *Repo) Count(ctx context.Context, userID int64) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_log WHERE user_id = $1;`,
		userID,
	).Scan(&count); err != nil {
		return -1, fmt.Errorf("count workouts: %w", err)
	}
	return count, nil
}

// FindLatestExerciseEntry returns the entry for the given exercise name
// from the user's most recent workout log containing it, together with
// that log's timestamp. Returns ErrNoExerciseHistory when the user never
// logged the exercise.
func (r *Repo) FindLatestExerciseEntry(ctx context.Context, userID int64, exerciseName string) (_ *ExerciseEntry, performedAt time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.findLatestExerciseEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.String("exercise.name", exerciseName))

	var entryBytes []byte
	err = r.db.QueryRow(
		ctx,
		`SELECT wl.created_at, entry
			FROM workout_log wl, jsonb_array_elements(wl.exercises) AS entry
			WHERE wl.user_id = $1 AND entry->>'name' = $2
			ORDER BY wl.created_at DESC
			LIMIT 1;`,
		userID, exerciseName,
	).Scan(&performedAt, &entryBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, time.Time{}, ErrNoExerciseHistory
		}
		return nil, time.Time{}, fmt.Errorf("find latest exercise entry: %w", err)
	}

	var entry ExerciseEntry
	if err := json.Unmarshal(entryBytes, &entry); err != nil {
		return nil, time.Time{}, fmt.Errorf("unmarshal exercise entry: %w", err)
	}

	return &entry, performedAt, nil
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]WorkoutLog, error) {
	var logs []WorkoutLog
	for rows.Next() {
		var wl WorkoutLog
		var exercisesBytes []byte
		var workoutNotes *string
		if err := rows.Scan(
			&wl.ID, &wl.UserID, &exercisesBytes, &wl.TotalCaloriesBurned, &wl.TotalDuration,
			&wl.WorkoutRating, &workoutNotes, &wl.CreatedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(exercisesBytes, &wl.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises for workout %d: %w", wl.ID, err)
		}
		if workoutNotes != nil {
			wl.WorkoutNotes = *workoutNotes
		}

		logs = append(logs, wl)
	}

	if logs == nil {
		logs = make([]WorkoutLog, 0)
	}

	return logs, nil
}
