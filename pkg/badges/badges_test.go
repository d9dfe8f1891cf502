package badges

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/ledger"
	"tableflip.dev/fatloss/pkg/record"
	"tableflip.dev/fatloss/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	records map[string]*record.Record
	state   map[string][]byte
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{
		records: make(map[string]*record.Record),
		state:   make(map[string][]byte),
	}
}

func (m *memoryPersistence) dayOf(r *record.Record) string {
	if !r.Normalized() {
		return store.UnknownDay
	}
	return r.At.Day()
}

func (m *memoryPersistence) List(_ context.Context, kind record.Kind) []*record.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*record.Record, 0)
	for _, r := range m.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func (m *memoryPersistence) ListDay(ctx context.Context, kind record.Kind, day string) []*record.Record {
	out := make([]*record.Record, 0)
	for _, r := range m.List(ctx, kind) {
		if m.dayOf(r) == day {
			out = append(out, r)
		}
	}
	return out
}

func (m *memoryPersistence) MapByDay(ctx context.Context, kind record.Kind) map[string][]*record.Record {
	grouped := make(map[string][]*record.Record)
	for _, r := range m.List(ctx, kind) {
		grouped[m.dayOf(r)] = append(grouped[m.dayOf(r)], r)
	}
	return grouped
}

func (m *memoryPersistence) Store(r *record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.records[r.ID] = &cp
	return nil
}

func (m *memoryPersistence) Delete(r *record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, r.ID)
	return nil
}

func (m *memoryPersistence) Get(key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.state[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (m *memoryPersistence) Set(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.state[key] = data
	return nil
}

func (m *memoryPersistence) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state, key)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

var anchor = time.Date(2025, 8, 23, 12, 0, 0, 0, time.Local)

func newTracker() (*Tracker, *ledger.Service, *bus.Bus) {
	mp := newMemoryPersistence()
	b := bus.New()
	svc := &ledger.Service{Persistence: mp, Bus: b}
	tracker := &Tracker{
		Ledger:      svc,
		Persistence: mp,
		Bus:         b,
		Now:         func() time.Time { return anchor },
	}
	return tracker, svc, b
}

func appendDiet(t *testing.T, svc *ledger.Service, at time.Time) {
	t.Helper()
	r := record.NewDiet("meal", 200, 400, record.Nutrition{})
	r.At = record.Timestamp{Time: at}
	if _, err := svc.Append(context.Background(), r); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func appendExercise(t *testing.T, svc *ledger.Service, at time.Time, minutes float64) {
	t.Helper()
	r := record.NewExercise("jog", minutes, 0, "aerobic")
	r.At = record.Timestamp{Time: at}
	if _, err := svc.Append(context.Background(), r); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func taskByBadge(t *testing.T, tasks []Task, badge string) Task {
	t.Helper()
	for _, task := range tasks {
		if task.Badge == badge {
			return task
		}
	}
	t.Fatalf("no task for %s", badge)
	return Task{}
}

func TestDietStreakCounting(t *testing.T) {
	tracker, svc, _ := newTracker()
	ctx := context.Background()

	// Three consecutive days ending today, plus an older disconnected day.
	for _, back := range []int{0, 1, 2, 5} {
		appendDiet(t, svc, anchor.AddDate(0, 0, -back))
	}

	tasks, err := tracker.Evaluate(ctx)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	streak := taskByBadge(t, tasks, BadgeDietStreak)
	if streak.Current != 3 {
		t.Fatalf("streak = %v, want 3", streak.Current)
	}
	if streak.Percent != 43 {
		t.Fatalf("percent = %d, want 43", streak.Percent)
	}
}

func TestStreakSurvivesUnloggedToday(t *testing.T) {
	tracker, svc, _ := newTracker()

	for _, back := range []int{1, 2} {
		appendDiet(t, svc, anchor.AddDate(0, 0, -back))
	}

	tasks, err := tracker.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got := taskByBadge(t, tasks, BadgeDietStreak).Current; got != 2 {
		t.Fatalf("streak = %v, want 2", got)
	}
}

func TestExerciseMinutesUnlocksOnce(t *testing.T) {
	tracker, svc, b := newTracker()
	ctx := context.Background()

	unlocks := 0
	b.Subscribe(bus.BadgeUnlocked, func(payload any) {
		if payload.(UnlockPayload).Badge == BadgeExerciseMinutes {
			unlocks++
		}
	})

	appendExercise(t, svc, anchor, 300)
	tasks, err := tracker.Evaluate(ctx)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	minutes := taskByBadge(t, tasks, BadgeExerciseMinutes)
	if minutes.Percent != 60 || minutes.Owned {
		t.Fatalf("unexpected progress: %+v", minutes)
	}

	appendExercise(t, svc, anchor.Add(time.Hour), 250)
	tasks, err = tracker.Evaluate(ctx)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	minutes = taskByBadge(t, tasks, BadgeExerciseMinutes)
	if !minutes.Owned || minutes.Percent != 100 {
		t.Fatalf("expected owned at 100%%: %+v", minutes)
	}
	if unlocks != 1 {
		t.Fatalf("expected 1 unlock publication, got %d", unlocks)
	}

	// Re-evaluation of an owned badge is a no-op.
	if _, err := tracker.Evaluate(ctx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if unlocks != 1 {
		t.Fatalf("owned badge republished, got %d", unlocks)
	}
}

func TestOwnedIsMonotonic(t *testing.T) {
	tracker, svc, _ := newTracker()
	ctx := context.Background()

	appendExercise(t, svc, anchor, 500)
	if _, err := tracker.Evaluate(ctx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	// Progress regressing below target must not revoke the badge.
	if err := svc.Remove(ctx, record.Exercise, anchor.Format("2006-01-02"), 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	tasks, err := tracker.Evaluate(ctx)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	minutes := taskByBadge(t, tasks, BadgeExerciseMinutes)
	if !minutes.Owned {
		t.Fatal("owned badge was revoked")
	}
	if minutes.Current != 0 {
		t.Fatalf("current = %v after removal", minutes.Current)
	}
}

func TestPercentCapsAtHundred(t *testing.T) {
	if got := percent(1200, 500); got != 100 {
		t.Fatalf("percent = %d", got)
	}
	if got := percent(1, 3); got != 33 {
		t.Fatalf("percent = %d", got)
	}
	if got := percent(2, 3); got != 67 {
		t.Fatalf("percent = %d", got)
	}
	if got := percent(5, 0); got != 0 {
		t.Fatalf("percent with zero target = %d", got)
	}
}
