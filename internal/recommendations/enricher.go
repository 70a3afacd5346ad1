package recommendations

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/flexora-app/backend/internal/telemetry/metrics"
	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/internal/workouts"
	"github.com/flexora-app/backend/pkg"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=enricher_mocks_test.go -package=recommendations_test

const (
	// weightIncrementKg is the progressive overload step for weighted
	// exercises: last lifted weight plus one standard plate pair.
	weightIncrementKg = 2.5

	// repsProgressionFactor bumps bodyweight exercise volume by 10%.
	repsProgressionFactor = 1.10

	enrichmentConcurrency = 4
)

type exerciseHistory interface {
	FindLatestExerciseEntry(ctx context.Context, userID int64, exerciseName string) (*workouts.ExerciseEntry, time.Time, error)
}

type Enricher struct {
	history exerciseHistory
	metrics *metrics.Manager
}

func NewEnricher(history exerciseHistory, metrics *metrics.Manager) *Enricher {
	return &Enricher{
		history: history,
		metrics: metrics,
	}
}

// Enrich overlays the ML recommendations with the user's training
// history. Exercises are looked up concurrently and independently: a
// failed lookup degrades that single exercise to its ML baseline and
// never fails the batch. Output order and length match the input.
func (e *Enricher) Enrich(ctx context.Context, userID int64, exercises []StrategicExercise) []EnrichedExercise {
	ctx, span := tracing.GlobalTracer.Start(ctx, "enricher.enrich")
	defer span.End()

	enriched := make([]EnrichedExercise, len(exercises))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(enrichmentConcurrency)
	for i, exercise := range exercises {
		i, exercise := i, exercise
		eg.Go(func() error {
			enriched[i] = e.enrichOne(ctx, userID, exercise)
			return nil
		})
	}
	// workers never return errors, per-exercise failures degrade instead
	_ = eg.Wait()

	return enriched
}

func (e *Enricher) enrichOne(ctx context.Context, userID int64, exercise StrategicExercise) EnrichedExercise {
	enriched := baseline(exercise)

	entry, performedAt, err := e.history.FindLatestExerciseEntry(ctx, userID, exercise.ExerciseName)
	if err != nil {
		if !errors.Is(err, workouts.ErrNoExerciseHistory) {
			log.Errorf("enrich exercise [%s] for user %d: %s", exercise.ExerciseName, userID, err)
			e.metrics.CounterEnrichmentFallback.Inc()
		}
		return enriched
	}
	if len(entry.Sets) == 0 {
		return enriched
	}

	totalSets := len(entry.Sets)
	var repsSum float64
	var lastWeight float64
	for _, set := range entry.Sets {
		repsSum += float64(set.Reps)
		if lastWeight == 0 && set.WeightKg != nil && *set.WeightKg > 0 {
			lastWeight = *set.WeightKg
		}
	}
	avgReps := repsSum / float64(totalSets)

	enriched.HasHistory = true
	enriched.Sets = totalSets
	enriched.LastPerformedDate = &performedAt

	if lastWeight > 0 {
		enriched.Progression = "weight"
		recommendedWeight := lastWeight + weightIncrementKg
		enriched.RecommendedWeight = &recommendedWeight
		enriched.LastWeight = &lastWeight
	} else {
		enriched.Progression = "reps"
		enriched.Reps = int(math.Ceil(avgReps * repsProgressionFactor))
		lastReps := pkg.RoundHalfUp(avgReps)
		enriched.LastReps = &lastReps
	}

	return enriched
}

// baseline is the no-history rendition of an ML recommendation, with
// the fractional set/rep baselines rounded half-up.
func baseline(exercise StrategicExercise) EnrichedExercise {
	return EnrichedExercise{
		ExerciseName:      exercise.ExerciseName,
		Confidence:        exercise.Confidence,
		Sets:              pkg.RoundHalfUp(exercise.Sets),
		Reps:              pkg.RoundHalfUp(exercise.Reps),
		CaloriesPer30Min:  exercise.CaloriesPer30Min,
		Benefit:           exercise.Benefit,
		EquipmentNeeded:   exercise.EquipmentNeeded,
		TargetMuscleGroup: exercise.TargetMuscleGroup,
		DifficultyLevel:   exercise.DifficultyLevel,
		HasHistory:        false,
	}
}
