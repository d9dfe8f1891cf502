// Package record defines the typed ledger records (diet, water, exercise)
// shared by the store, the aggregator, and the views.
package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Nutrition is the macro breakdown of a diet record, in grams.
type Nutrition struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber,omitempty"`
}

// Record is one ledger entry. Exactly the fields for its Kind are set; the
// rest stay zero. Records are immutable once stored — edits are expressed as
// delete-and-reinsert by the ledger.
type Record struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// At is the canonical instant. RawTime preserves the encoding the record
	// arrived with; when it cannot be normalized the record is excluded from
	// aggregation but still listed, so nothing is silently lost.
	At      Timestamp `json:"at"`
	RawTime string    `json:"rawTime,omitempty"`

	// Diet fields.
	Dish      string    `json:"dish,omitempty"`
	Grams     float64   `json:"grams,omitempty"`
	Calories  float64   `json:"calories,omitempty"`
	Nutrition Nutrition `json:"nutrition"`

	// Water fields.
	Milliliters float64 `json:"milliliters,omitempty"`

	// Exercise fields.
	Exercise       string  `json:"exercise,omitempty"`
	Minutes        float64 `json:"minutes,omitempty"`
	CaloriesBurned float64 `json:"caloriesBurned,omitempty"`
	Category       string  `json:"category,omitempty"`
}

// NewDiet builds a diet record stamped now.
func NewDiet(dish string, grams, calories float64, n Nutrition) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Kind:      Diet,
		At:        Timestamp{Time: time.Now()},
		Dish:      dish,
		Grams:     grams,
		Calories:  calories,
		Nutrition: n,
	}
}

// NewWater builds a water record stamped now.
func NewWater(milliliters float64) *Record {
	return &Record{
		ID:          uuid.NewString(),
		Kind:        Water,
		At:          Timestamp{Time: time.Now()},
		Milliliters: milliliters,
	}
}

// NewExercise builds an exercise record stamped now. When burned is zero the
// backend's estimate of ten kcal per minute is applied, matching what the
// history screens display.
func NewExercise(name string, minutes, burned float64, category string) *Record {
	if burned == 0 {
		burned = minutes * 10
	}
	return &Record{
		ID:             uuid.NewString(),
		Kind:           Exercise,
		At:             Timestamp{Time: time.Now()},
		Exercise:       name,
		Minutes:        minutes,
		CaloriesBurned: burned,
		Category:       category,
	}
}

// Validate checks required fields and the non-negativity rules before a
// record may enter the ledger. Semantic plausibility of AI-derived values is
// deliberately not checked here.
func (r *Record) Validate() error {
	if r == nil {
		return errors.New("nil record")
	}
	switch r.Kind {
	case Diet:
		if r.Dish == "" {
			return errors.New("diet record requires a dish name")
		}
		if r.Grams < 0 || r.Calories < 0 {
			return errors.New("diet record requires non-negative weight and calories")
		}
		if r.Nutrition.Protein < 0 || r.Nutrition.Carbs < 0 || r.Nutrition.Fat < 0 || r.Nutrition.Fiber < 0 {
			return errors.New("nutrition values must be non-negative")
		}
	case Water:
		if r.Milliliters < 0 {
			return errors.New("water record requires a non-negative volume")
		}
	case Exercise:
		if r.Exercise == "" {
			return errors.New("exercise record requires a name")
		}
		if r.Minutes <= 0 {
			return errors.New("exercise record requires positive spent time")
		}
		if r.CaloriesBurned < 0 {
			return errors.New("calories burned must be non-negative")
		}
	default:
		return fmt.Errorf("unknown record kind %q", r.Kind)
	}
	return nil
}

// Amount is the value the record contributes to its day bucket's total:
// calories for diet, milliliters for water, minutes for exercise.
func (r *Record) Amount() float64 {
	switch r.Kind {
	case Water:
		return r.Milliliters
	case Exercise:
		return r.Minutes
	default:
		return r.Calories
	}
}

// Normalized reports whether the record carries a usable canonical instant.
func (r *Record) Normalized() bool {
	return !r.At.IsZero()
}

// Title is the record's display name.
func (r *Record) Title() string {
	switch r.Kind {
	case Water:
		return fmt.Sprintf("%.0f ml", r.Milliliters)
	case Exercise:
		return r.Exercise
	default:
		return r.Dish
	}
}
