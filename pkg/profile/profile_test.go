package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/energy"
	"tableflip.dev/fatloss/pkg/record"
	"tableflip.dev/fatloss/pkg/store"
)

// stateOnly fakes just the state keyspace of store.Persistence.
type stateOnly struct {
	mu    sync.Mutex
	state map[string][]byte
}

func newStateOnly() *stateOnly {
	return &stateOnly{state: make(map[string][]byte)}
}

func (s *stateOnly) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.state[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (s *stateOnly) Set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.state[key] = data
	return nil
}

func (s *stateOnly) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state, key)
	return nil
}

func (s *stateOnly) List(context.Context, record.Kind) []*record.Record { return nil }
func (s *stateOnly) ListDay(context.Context, record.Kind, string) []*record.Record {
	return nil
}
func (s *stateOnly) MapByDay(context.Context, record.Kind) map[string][]*record.Record {
	return nil
}
func (s *stateOnly) Store(*record.Record) error                        { return nil }
func (s *stateOnly) Delete(*record.Record) error                       { return nil }
func (s *stateOnly) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

func fixedNow() time.Time {
	return time.Date(2025, 8, 23, 12, 0, 0, 0, time.Local)
}

func testProfile() *Profile {
	return &Profile{
		Gender:        energy.Male,
		BirthDate:     time.Date(1995, 8, 1, 0, 0, 0, 0, time.Local),
		HeightCM:      175,
		WeightKG:      80,
		ActivityLevel: 3,
		Mode:          energy.Lose,
	}
}

func TestLoadWithoutProfile(t *testing.T) {
	m := &Manager{Persistence: newStateOnly(), Now: fixedNow}
	if _, err := m.Load(); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestSaveDerivesGoal(t *testing.T) {
	m := &Manager{Persistence: newStateOnly(), Now: fixedNow}

	if err := m.Save(testProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}
	p, err := m.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.TDEE == 0 || p.CalorieGoal == 0 {
		t.Fatalf("derived fields not set: %+v", p)
	}
	if p.CalorieGoal != p.TDEE-300 {
		t.Fatalf("goal = %v, tdee = %v", p.CalorieGoal, p.TDEE)
	}
	if p.Approximate {
		t.Fatal("birth date present, result must not be approximate")
	}
}

func TestOverrideClearsOnProfileEdit(t *testing.T) {
	m := &Manager{Persistence: newStateOnly(), Now: fixedNow}

	if err := m.Save(testProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.SetGoalOverride(1800); err != nil {
		t.Fatalf("override: %v", err)
	}
	p, _ := m.Load()
	if !p.GoalOverride || p.CalorieGoal != 1800 {
		t.Fatalf("override not in force: %+v", p)
	}

	edited := testProfile()
	edited.WeightKG = 78
	if err := m.Save(edited); err != nil {
		t.Fatalf("save: %v", err)
	}
	p, _ = m.Load()
	if p.GoalOverride {
		t.Fatal("profile edit must clear the override")
	}
	if p.CalorieGoal == 1800 {
		t.Fatal("goal must be re-derived after the edit")
	}
}

func TestGoalChangedPublished(t *testing.T) {
	b := bus.New()
	m := &Manager{Persistence: newStateOnly(), Bus: b, Now: fixedNow}

	var got []GoalPayload
	b.Subscribe(bus.GoalChanged, func(payload any) {
		got = append(got, payload.(GoalPayload))
	})

	if err := m.Save(testProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 publication after first save, got %d", len(got))
	}

	// Re-saving the identical profile leaves the goal alone.
	if err := m.Save(testProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unchanged goal must not republish, got %d", len(got))
	}

	if err := m.SetGoalOverride(2000); err != nil {
		t.Fatalf("override: %v", err)
	}
	if len(got) != 2 || !got[1].Override || got[1].CalorieGoal != 2000 {
		t.Fatalf("unexpected publications: %v", got)
	}
}

func TestEnergyUsesStoredProfile(t *testing.T) {
	m := &Manager{Persistence: newStateOnly(), Now: fixedNow}
	if err := m.Save(testProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}

	stored, err := m.Energy("")
	if err != nil {
		t.Fatalf("energy: %v", err)
	}
	maintain, err := m.Energy(energy.Maintain)
	if err != nil {
		t.Fatalf("energy: %v", err)
	}
	if stored.CalorieGoal != maintain.TDEE-300 {
		t.Fatalf("stored mode should be lose: goal %v, tdee %v", stored.CalorieGoal, maintain.TDEE)
	}
}
