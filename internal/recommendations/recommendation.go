package recommendations

import "time"

// StrategicExercise is one exercise recommendation as returned by the
// ML service. Sets and reps arrive as fractional baselines from the
// model's knowledge base.
type StrategicExercise struct {
	ExerciseName      string   `json:"exercise_name"`
	Confidence        float64  `json:"confidence"`
	Sets              float64  `json:"sets"`
	Reps              float64  `json:"reps"`
	CaloriesPer30Min  *float64 `json:"calories_per_30min"`
	Benefit           string   `json:"benefit"`
	EquipmentNeeded   string   `json:"equipment_needed"`
	TargetMuscleGroup string   `json:"target_muscle_group"`
	DifficultyLevel   string   `json:"difficulty_level"`
}

// EnrichedExercise is a StrategicExercise overlaid with the user's own
// training history and a progressive-overload suggestion.
type EnrichedExercise struct {
	ExerciseName      string   `json:"exercise_name"`
	Confidence        float64  `json:"confidence"`
	Sets              int      `json:"sets"`
	Reps              int      `json:"reps"`
	CaloriesPer30Min  *float64 `json:"calories_per_30min"`
	Benefit           string   `json:"benefit"`
	EquipmentNeeded   string   `json:"equipment_needed"`
	TargetMuscleGroup string   `json:"target_muscle_group"`
	DifficultyLevel   string   `json:"difficulty_level"`

	HasHistory        bool       `json:"hasHistory"`
	Progression       string     `json:"progression,omitempty"` // "weight" or "reps"
	RecommendedWeight *float64   `json:"recommendedWeight,omitempty"`
	LastWeight        *float64   `json:"lastWeight,omitempty"`
	LastReps          *int       `json:"lastReps,omitempty"`
	LastPerformedDate *time.Time `json:"lastPerformedDate,omitempty"`
}

type DietSuggestion struct {
	DietType string   `json:"diet_type"`
	MealType string   `json:"meal_type"`
	Calories *float64 `json:"calories,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Proteins *float64 `json:"proteins,omitempty"`
	Fats     *float64 `json:"fats,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// MLRecommendation is the raw ML service response.
type MLRecommendation struct {
	Success                 bool                `json:"success"`
	BMI                     float64             `json:"bmi"`
	ExerciseRecommendations []StrategicExercise `json:"exercise_recommendations"`
	DietSuggestion          *DietSuggestion     `json:"diet_suggestion"`
}

// Response is what clients get back: the ML recommendations after
// history enrichment.
type Response struct {
	BMI                     float64            `json:"bmi"`
	ExerciseRecommendations []EnrichedExercise `json:"exercise_recommendations"`
	DietSuggestion          *DietSuggestion    `json:"diet_suggestion,omitempty"`
}
