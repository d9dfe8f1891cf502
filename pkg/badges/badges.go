// Package badges evaluates achievement tasks against the ledger and promotes
// completed badges to owned, exactly once each.
package badges

import (
	"context"
	"errors"
	"math"
	"time"

	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/ledger"
	"tableflip.dev/fatloss/pkg/profile"
	"tableflip.dev/fatloss/pkg/record"
	"tableflip.dev/fatloss/pkg/store"
)

// ownedKey is the owned-badge set's slot in the store's state keyspace.
const ownedKey = "badges.owned"

// Badge identifiers.
const (
	BadgeDietStreak      = "diet-streak"
	BadgeExerciseMinutes = "exercise-minutes"
	BadgeGoalStreak      = "goal-streak"
)

// Task is one achievement's progress: a current/target pair plus the badge
// it unlocks.
type Task struct {
	Badge   string
	Title   string
	Current float64
	Target  float64
	Percent int
	Owned   bool
}

// UnlockPayload rides on the badgeUnlocked event.
type UnlockPayload struct {
	Badge string
	Title string
}

// Tracker recomputes task progress from the ledger and the profile. The
// owned set is persisted and only ever grows.
type Tracker struct {
	Ledger      *ledger.Service
	Profile     *profile.Manager
	Persistence store.Persistence
	Bus         *bus.Bus

	// Now is the clock anchoring streak evaluation; nil means time.Now.
	Now func() time.Time
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Evaluate recomputes every task's progress and promotes newly completed
// badges to owned, publishing badgeUnlocked once per promotion. Re-running
// against an already-owned badge is a no-op.
func (t *Tracker) Evaluate(ctx context.Context) ([]Task, error) {
	if t.Ledger == nil || t.Persistence == nil {
		return nil, errors.New("badges: tracker not wired")
	}

	owned, err := t.loadOwned()
	if err != nil {
		return nil, err
	}

	tasks := []Task{
		{Badge: BadgeDietStreak, Title: "7-day logging streak", Target: 7},
		{Badge: BadgeExerciseMinutes, Title: "500 exercise minutes", Target: 500},
		{Badge: BadgeGoalStreak, Title: "3 days under goal", Target: 3},
	}

	dietDays, err := t.Ledger.History(ctx, record.Diet)
	if err != nil {
		return nil, err
	}
	exerciseDays, err := t.Ledger.History(ctx, record.Exercise)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		switch tasks[i].Badge {
		case BadgeDietStreak:
			tasks[i].Current = float64(consecutiveDays(dietDays, t.now()))
		case BadgeExerciseMinutes:
			total := 0.0
			for _, bucket := range exerciseDays {
				total += bucket.Total
			}
			tasks[i].Current = total
		case BadgeGoalStreak:
			streak, err := t.goalStreak(dietDays)
			if err != nil {
				return nil, err
			}
			tasks[i].Current = float64(streak)
		}
		tasks[i].Percent = percent(tasks[i].Current, tasks[i].Target)
		tasks[i].Owned = owned[tasks[i].Badge]
	}

	changed := false
	for i := range tasks {
		if tasks[i].Percent >= 100 && !tasks[i].Owned {
			tasks[i].Owned = true
			owned[tasks[i].Badge] = true
			changed = true
			if t.Bus != nil {
				t.Bus.Publish(bus.BadgeUnlocked, UnlockPayload{
					Badge: tasks[i].Badge,
					Title: tasks[i].Title,
				})
			}
		}
	}
	if changed {
		if err := t.Persistence.Set(ownedKey, owned); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (t *Tracker) loadOwned() (map[string]bool, error) {
	owned := make(map[string]bool)
	if _, err := t.Persistence.Get(ownedKey, &owned); err != nil {
		return nil, err
	}
	return owned, nil
}

// goalStreak counts consecutive days, ending today or yesterday, whose diet
// total stayed at or under the calorie goal. Without a profile the streak is
// zero rather than an error.
func (t *Tracker) goalStreak(dietDays []ledger.DayBucket) (int, error) {
	if t.Profile == nil {
		return 0, nil
	}
	p, err := t.Profile.Load()
	if err != nil {
		if errors.Is(err, profile.ErrNoProfile) {
			return 0, nil
		}
		return 0, err
	}

	met := make([]ledger.DayBucket, 0, len(dietDays))
	for _, bucket := range dietDays {
		if bucket.Total <= p.CalorieGoal {
			met = append(met, bucket)
		}
	}
	return consecutiveDays(met, t.now()), nil
}

// consecutiveDays counts the run of adjacent day keys ending today (or
// yesterday, so an unfinished today does not break a streak). Buckets arrive
// most recent day first.
func consecutiveDays(buckets []ledger.DayBucket, now time.Time) int {
	if len(buckets) == 0 {
		return 0
	}
	days := make(map[string]bool, len(buckets))
	for _, bucket := range buckets {
		if len(bucket.Records) > 0 {
			days[bucket.Day] = true
		}
	}

	cursor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !days[dayKey(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for days[dayKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// percent is the displayed completion, capped at 100.
func percent(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Min(100, math.Round(100*current/target)))
}
