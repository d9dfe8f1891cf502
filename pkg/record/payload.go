package record

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ExercisePayload is the boundary shape for exercise entries coming from the
// backend. The service spells the same concept several ways depending on the
// call site (exerciseName vs exercise_name vs name, created_at vs
// exerciseTime), so all known keys are declared here and resolved once.
// Downstream code never touches the raw payload.
type ExercisePayload struct {
	ExerciseName  string  `json:"exerciseName"`
	ExerciseName2 string  `json:"exercise_name"`
	Name          string  `json:"name"`
	CreatedAt     string  `json:"created_at"`
	ExerciseTime  string  `json:"exerciseTime"`
	Time          string  `json:"time"`
	SpentTime     float64 `json:"spent_time"`
	SpentTime2    float64 `json:"spentTime"`
	Calories      float64 `json:"calories"`
	Category      string  `json:"type"`
}

// ErrEmptyPayload reports a payload carrying none of the known name keys.
var ErrEmptyPayload = errors.New("record: exercise payload has no name")

// DecodeExercisePayload normalizes one raw backend item into a Record. The
// canonical instant is left for the ledger to assign from RawTime.
func DecodeExercisePayload(data []byte) (*Record, error) {
	var p ExercisePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p.Record()
}

// Record resolves the payload's aliased fields into a ledger record.
func (p ExercisePayload) Record() (*Record, error) {
	name := firstNonEmpty(p.ExerciseName, p.ExerciseName2, p.Name)
	if name == "" {
		return nil, ErrEmptyPayload
	}
	minutes := p.SpentTime
	if minutes == 0 {
		minutes = p.SpentTime2
	}
	burned := p.Calories
	if burned == 0 {
		burned = minutes * 10
	}
	category := p.Category
	if category == "" {
		category = "aerobic"
	}
	return &Record{
		ID:             uuid.NewString(),
		Kind:           Exercise,
		RawTime:        firstNonEmpty(p.CreatedAt, p.ExerciseTime, p.Time),
		Exercise:       name,
		Minutes:        minutes,
		CaloriesBurned: burned,
		Category:       category,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
