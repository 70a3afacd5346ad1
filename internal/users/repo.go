package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/flexora-app/backend/internal/identity"
	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const userColumns = `
	id, google_id, email, display_name, profile_image, password_hash,
	age, gender, weight_kg, height_m, body_fat_percentage,
	max_bpm, avg_bpm, resting_bpm, session_duration, calories_burned, water_intake,
	experience_level, workout_frequency, primary_workout_type, primary_diet_type,
	current_streak, longest_streak, last_workout_date, leaderboard_score, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var googleID *string
	if user.GoogleID != "" {
		googleID = &user.GoogleID
	}
	var passwordHash *string
	if user.PasswordHash != "" {
		passwordHash = &user.PasswordHash
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO fitness_user
				(google_id, email, display_name, profile_image, password_hash, experience_level)
			VALUES ($1, $2, $3, $4, $5, 1)
			RETURNING id, created_at;`,
		googleID, user.Email, user.DisplayName, user.ProfileImage, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))

	return &user, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *Repo) GetByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return r.getBy(ctx, "google_id = $1", googleID)
}

// UpsertGoogleUser resolves a verified Google identity to a local user:
// match on google_id first, then adopt an existing local-credentials
// account with the same email, otherwise create a fresh user. Returns
// whether the user was newly created.
func (r *Repo) UpsertGoogleUser(ctx context.Context, info *identity.GoogleUserInfo) (_ *User, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.upsertGoogle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := r.GetByGoogleID(ctx, info.GoogleID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	user, err = r.GetByEmail(ctx, info.Email)
	if err == nil {
		if _, err := r.db.Exec(
			ctx,
			`UPDATE fitness_user SET google_id = $1, profile_image = $2 WHERE id = $3;`,
			info.GoogleID, info.Picture, user.ID,
		); err != nil {
			return nil, false, fmt.Errorf("link google identity: %w", err)
		}
		user.GoogleID = info.GoogleID
		user.ProfileImage = info.Picture
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	user, err = r.Create(ctx, User{
		GoogleID:     info.GoogleID,
		Email:        info.Email,
		DisplayName:  info.Name,
		ProfileImage: info.Picture,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// UpdateProfile merges the set fields of the given profile into the
// user's stored profile. Unset (nil) fields keep their current values.
func (r *Repo) UpdateProfile(ctx context.Context, userID int64, profile Profile) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE fitness_user SET
				age = COALESCE($1, age),
				gender = COALESCE($2, gender),
				weight_kg = COALESCE($3, weight_kg),
				height_m = COALESCE($4, height_m),
				body_fat_percentage = COALESCE($5, body_fat_percentage),
				max_bpm = COALESCE($6, max_bpm),
				avg_bpm = COALESCE($7, avg_bpm),
				resting_bpm = COALESCE($8, resting_bpm),
				session_duration = COALESCE($9, session_duration),
				calories_burned = COALESCE($10, calories_burned),
				water_intake = COALESCE($11, water_intake),
				experience_level = COALESCE($12, experience_level),
				workout_frequency = COALESCE($13, workout_frequency),
				primary_workout_type = COALESCE($14, primary_workout_type),
				primary_diet_type = COALESCE($15, primary_diet_type)
			WHERE id = $16;`,
		profile.Age, profile.Gender, profile.WeightKg, profile.HeightM, profile.BodyFatPercentage,
		profile.MaxBPM, profile.AvgBPM, profile.RestingBPM, profile.SessionDuration,
		profile.CaloriesBurned, profile.WaterIntake,
		profile.ExperienceLevel, profile.WorkoutFrequency,
		profile.PrimaryWorkoutType, profile.PrimaryDietType,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}

	return r.GetByID(ctx, userID)
}

func (r *Repo) getBy(ctx context.Context, where string, arg any) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM fitness_user WHERE `+where+`;`,
		arg,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var googleID, profileImage, passwordHash *string
	if err := row.Scan(
		&u.ID, &googleID, &u.Email, &u.DisplayName, &profileImage, &passwordHash,
		&u.Profile.Age, &u.Profile.Gender, &u.Profile.WeightKg, &u.Profile.HeightM,
		&u.Profile.BodyFatPercentage,
		&u.Profile.MaxBPM, &u.Profile.AvgBPM, &u.Profile.RestingBPM,
		&u.Profile.SessionDuration, &u.Profile.CaloriesBurned, &u.Profile.WaterIntake,
		&u.Profile.ExperienceLevel, &u.Profile.WorkoutFrequency,
		&u.Profile.PrimaryWorkoutType, &u.Profile.PrimaryDietType,
		&u.Gamification.CurrentStreak, &u.Gamification.LongestStreak,
		&u.Gamification.LastWorkoutDate, &u.Gamification.LeaderboardScore,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}

	if googleID != nil {
		u.GoogleID = *googleID
	}
	if profileImage != nil {
		u.ProfileImage = *profileImage
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}

	return &u, nil
}
