package workouts

import "time"

// PointsPerWorkout is the fixed score award for every logged workout,
// independent of the workout content.
const PointsPerWorkout = 10

// Ledger is the gamification state of a user: the consecutive-day
// streak and the cumulative leaderboard score.
type Ledger struct {
	CurrentStreak    int
	LongestStreak    int
	LastWorkoutDate  *time.Time
	LeaderboardScore int
}

// LedgerUpdate is the ledger state after a logged workout, plus the
// points awarded for it.
type LedgerUpdate struct {
	Ledger
	PointsEarned int
}

// UpdateLedger applies a newly logged workout to the ledger. Streak
// decisions compare calendar days (UTC), while LastWorkoutDate keeps
// the full submission instant:
//   - no previous workout: streak starts at 1
//   - same day: streak unchanged
//   - next day: streak +1
//   - any other gap (including clock going backwards): streak resets to 1
func UpdateLedger(ledger Ledger, now time.Time) LedgerUpdate {
	updated := ledger

	if ledger.LastWorkoutDate == nil {
		updated.CurrentStreak = 1
	} else {
		switch delta := daysBetween(*ledger.LastWorkoutDate, now); delta {
		case 0:
			// same day, streak unchanged
		case 1:
			updated.CurrentStreak++
		default:
			updated.CurrentStreak = 1
		}
	}

	if updated.CurrentStreak > updated.LongestStreak {
		updated.LongestStreak = updated.CurrentStreak
	}

	lastWorkout := now
	updated.LastWorkoutDate = &lastWorkout
	updated.LeaderboardScore += PointsPerWorkout

	return LedgerUpdate{
		Ledger:       updated,
		PointsEarned: PointsPerWorkout,
	}
}

func daysBetween(from, to time.Time) int {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
