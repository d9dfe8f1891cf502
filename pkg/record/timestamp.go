package record

import (
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/fatloss/pkg/timeutil"
)

// Timestamp wraps time.Time with RFC3339 JSON encoding and lenient decoding,
// so records written by older builds (epoch millis, locale strings) still
// round-trip through the store.
type Timestamp struct {
	time.Time
}

// Day returns the local calendar-day key for the instant.
func (t Timestamp) Day() string {
	return timeutil.DayKey(t.Time)
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := timeutil.Normalize(raw)
	if err != nil {
		// Leave zero; the owning record keeps RawTime for the fallback list.
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}
