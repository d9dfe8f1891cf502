package record

import (
	"fmt"
	"strings"
)

// Kind selects one of the typed ledger collections.
type Kind string

const (
	Diet     Kind = "diet"
	Water    Kind = "water"
	Exercise Kind = "exercise"
)

// Kinds lists every ledger collection in display order.
func Kinds() []Kind {
	return []Kind{Diet, Water, Exercise}
}

// ParseKind resolves user input (including a few aliases) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diet", "food", "meal":
		return Diet, nil
	case "water", "drink":
		return Water, nil
	case "exercise", "sport", "workout":
		return Exercise, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

func (k Kind) String() string { return string(k) }

// Unit is the unit of the kind's aggregate total.
func (k Kind) Unit() string {
	switch k {
	case Water:
		return "ml"
	case Exercise:
		return "min"
	default:
		return "kcal"
	}
}
