// Package energy computes basal metabolic rate, total daily energy
// expenditure, and the daily calorie goal from a user's body profile. It is
// pure: same inputs, same outputs, no clock reads except through the caller.
package energy

import (
	"fmt"
	"math"
	"time"
)

// Mode is the weight target driving the calorie goal.
type Mode string

const (
	Lose     Mode = "lose"
	Maintain Mode = "maintain"
	Gain     Mode = "gain"
)

// ParseMode maps user input onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "lose", "cut", "down":
		return Lose, nil
	case "maintain", "keep", "":
		return Maintain, nil
	case "gain", "bulk", "up":
		return Gain, nil
	}
	return "", fmt.Errorf("unknown target mode %q", s)
}

// Gender selects the Mifflin-St Jeor constant.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

const (
	// goalDelta is the offset applied to TDEE in lose/gain mode.
	goalDelta = 300.0

	// goalFloor is the minimum daily calorie goal regardless of mode.
	goalFloor = 1200.0

	// defaultAge stands in when no birth date is known. Results computed
	// with it are flagged approximate.
	defaultAge = 25
)

// activityMultipliers maps the 1-5 activity level onto the TDEE factor.
var activityMultipliers = map[int]float64{
	1: 1.2,
	2: 1.375,
	3: 1.55,
	4: 1.725,
	5: 1.9,
}

// Input is the body profile slice the model needs. BirthDate may be zero.
type Input struct {
	Gender        Gender
	BirthDate     time.Time
	HeightCM      float64
	WeightKG      float64
	ActivityLevel int
}

// Result carries the derived energy figures, in kcal/day. Approximate is set
// when the age had to be assumed; views disclose it next to the numbers.
type Result struct {
	BMR         float64
	TDEE        float64
	CalorieGoal float64
	Age         int
	Approximate bool
}

// Compute derives the energy figures as of now. Mifflin-St Jeor for BMR,
// level-multiplier for TDEE, then the mode delta clamped to the floor.
func Compute(in Input, mode Mode, now time.Time) (Result, error) {
	if in.WeightKG <= 0 || in.HeightCM <= 0 {
		return Result{}, fmt.Errorf("energy: height and weight required, got %.1fcm %.1fkg", in.HeightCM, in.WeightKG)
	}
	multiplier, ok := activityMultipliers[in.ActivityLevel]
	if !ok {
		return Result{}, fmt.Errorf("energy: activity level must be 1-5, got %d", in.ActivityLevel)
	}

	age, approximate := ageAt(in.BirthDate, now)

	bmr := 10*in.WeightKG + 6.25*in.HeightCM - 5*float64(age)
	switch in.Gender {
	case Male:
		bmr += 5
	case Female:
		bmr -= 161
	default:
		return Result{}, fmt.Errorf("energy: unknown gender %q", in.Gender)
	}

	tdee := bmr * multiplier

	goal := tdee
	switch mode {
	case Lose:
		goal = tdee - goalDelta
	case Gain:
		goal = tdee + goalDelta
	case Maintain:
	default:
		return Result{}, fmt.Errorf("energy: unknown target mode %q", mode)
	}
	goal = math.Max(goalFloor, goal)

	return Result{
		BMR:         bmr,
		TDEE:        tdee,
		CalorieGoal: goal,
		Age:         age,
		Approximate: approximate,
	}, nil
}

// ageAt is whole years between birth and now. A zero birth date yields the
// assumed default.
func ageAt(birth, now time.Time) (int, bool) {
	if birth.IsZero() {
		return defaultAge, true
	}
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years, false
}
