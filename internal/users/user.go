package users

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

var (
	validGenders = map[string]bool{
		"male": true, "female": true, "other": true,
	}
	validWorkoutTypes = map[string]bool{
		"strength": true, "cardio": true, "flexibility": true, "mixed": true,
	}
	validDietTypes = map[string]bool{
		"standard": true, "vegetarian": true, "vegan": true,
		"keto": true, "paleo": true, "mediterranean": true, "other": true,
	}
)

// Gamification is the per-user streak and score ledger. It is only ever
// mutated by logged workouts, never directly by the client.
type Gamification struct {
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	LastWorkoutDate  *time.Time `json:"lastWorkoutDate,omitempty"`
	LeaderboardScore int        `json:"leaderboardScore"`
}

type User struct {
	ID           int64  `json:"id"`
	GoogleID     string `json:"googleId,omitempty"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	ProfileImage string `json:"profileImage,omitempty"`
	PasswordHash string `json:"-"`

	Profile      Profile      `json:"profile"`
	Gamification Gamification `json:"gamification"`

	CreatedAt time.Time `json:"createdAt"`
}

// Profile holds the physical attributes and training preferences the ML
// service is fed with. All fields are optional until onboarding is done.
type Profile struct {
	Age               *int     `json:"age,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	WeightKg          *float64 `json:"weightKg,omitempty"`
	HeightM           *float64 `json:"heightM,omitempty"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`

	MaxBPM          *int     `json:"maxBPM,omitempty"`
	AvgBPM          *int     `json:"avgBPM,omitempty"`
	RestingBPM      *int     `json:"restingBPM,omitempty"`
	SessionDuration *float64 `json:"sessionDuration,omitempty"`
	CaloriesBurned  *float64 `json:"caloriesBurned,omitempty"`
	WaterIntake     *float64 `json:"waterIntake,omitempty"`

	ExperienceLevel    *int    `json:"experienceLevel,omitempty"`
	WorkoutFrequency   *int    `json:"workoutFrequency,omitempty"`
	PrimaryWorkoutType *string `json:"primaryWorkoutType,omitempty"`
	PrimaryDietType    *string `json:"primaryDietType,omitempty"`
}

func (p *Profile) Validate() error {
	if p.Age != nil && (*p.Age < 13 || *p.Age > 120) {
		return fmt.Errorf("age must be between 13 and 120")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender %q", *p.Gender)
	}
	if p.WeightKg != nil && (*p.WeightKg < 20 || *p.WeightKg > 300) {
		return fmt.Errorf("weightKg must be between 20 and 300")
	}
	if p.HeightM != nil && (*p.HeightM < 0.5 || *p.HeightM > 3.0) {
		return fmt.Errorf("heightM must be between 0.5 and 3.0")
	}
	if p.BodyFatPercentage != nil && (*p.BodyFatPercentage < 0 || *p.BodyFatPercentage > 100) {
		return fmt.Errorf("bodyFatPercentage must be between 0 and 100")
	}
	if p.ExperienceLevel != nil && (*p.ExperienceLevel < 1 || *p.ExperienceLevel > 3) {
		return fmt.Errorf("experienceLevel must be 1, 2 or 3")
	}
	if p.WorkoutFrequency != nil && (*p.WorkoutFrequency < 0 || *p.WorkoutFrequency > 7) {
		return fmt.Errorf("workoutFrequency must be between 0 and 7")
	}
	if p.PrimaryWorkoutType != nil && !validWorkoutTypes[*p.PrimaryWorkoutType] {
		return fmt.Errorf("invalid primaryWorkoutType %q", *p.PrimaryWorkoutType)
	}
	if p.PrimaryDietType != nil && !validDietTypes[*p.PrimaryDietType] {
		return fmt.Errorf("invalid primaryDietType %q", *p.PrimaryDietType)
	}
	return nil
}

// Complete reports whether the profile carries the minimum the ML
// service needs: age, gender, weight and height.
func (p *Profile) Complete() bool {
	return p.Age != nil && p.Gender != nil && p.WeightKg != nil && p.HeightM != nil
}
