package workouts

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrNoExerciseHistory = errors.New("no exercise history")
)

const maxNotesLength = 500

// ExerciseSet is a single performed set. Weight and duration are
// optional, bodyweight or timed exercises carry only what applies.
type ExerciseSet struct {
	Reps        int      `json:"reps"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	DurationSec *int     `json:"durationSec,omitempty"`
}

// ExerciseEntry is one exercise of a logged workout, with set-by-set
// tracking. Entry order within a workout is preserved as submitted.
type ExerciseEntry struct {
	Name string        `json:"name"`
	Sets []ExerciseSet `json:"sets"`
}

type WorkoutLog struct {
	ID                  int64           `json:"id"`
	UserID              int64           `json:"userId"`
	Exercises           []ExerciseEntry `json:"exercises"`
	TotalCaloriesBurned float64         `json:"totalCaloriesBurned"`
	TotalDuration       float64         `json:"totalDuration"` // minutes
	WorkoutRating       *int            `json:"workoutRating,omitempty"`
	WorkoutNotes        string          `json:"workoutNotes,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

func (wl *WorkoutLog) Validate() error {
	if len(wl.Exercises) == 0 {
		return fmt.Errorf("at least one exercise required")
	}
	for i, entry := range wl.Exercises {
		if entry.Name == "" {
			return fmt.Errorf("exercise %d has no name", i+1)
		}
		if len(entry.Sets) == 0 {
			return fmt.Errorf("exercise %q has no sets", entry.Name)
		}
	}
	if wl.WorkoutRating != nil && (*wl.WorkoutRating < 1 || *wl.WorkoutRating > 5) {
		return fmt.Errorf("workout rating must be between 1 and 5")
	}
	if len(wl.WorkoutNotes) > maxNotesLength {
		return fmt.Errorf("workout notes must have at most %d characters", maxNotesLength)
	}
	if wl.TotalCaloriesBurned < 0 {
		return fmt.Errorf("total calories burned must not be negative")
	}
	if wl.TotalDuration < 0 {
		return fmt.Errorf("total duration must not be negative")
	}
	return nil
}
