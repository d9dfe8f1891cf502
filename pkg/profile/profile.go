// Package profile manages the locally persisted user profile and the calorie
// goal derived from it.
package profile

import (
	"errors"
	"time"

	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/energy"
	"tableflip.dev/fatloss/pkg/store"
)

// stateKey is the profile's slot in the store's state keyspace.
const stateKey = "profile"

// ErrNoProfile means onboarding never ran on this install.
var ErrNoProfile = errors.New("profile: not set up yet")

// Profile is the persisted user profile. Goal and TDEE are derived on Save;
// GoalOverride, when set, pins the goal until the next profile edit.
type Profile struct {
	Gender         energy.Gender `json:"gender"`
	BirthDate      time.Time     `json:"birthDate,omitempty"`
	HeightCM       float64       `json:"heightCm"`
	WeightKG       float64       `json:"weightKg"`
	TargetWeightKG float64       `json:"targetWeightKg,omitempty"`
	HandLengthCM   float64       `json:"handLengthCm,omitempty"`
	ActivityLevel  int           `json:"activityLevel"`
	Mode           energy.Mode   `json:"mode"`

	CalorieGoal  float64 `json:"calorieGoal"`
	TDEE         float64 `json:"tdee"`
	GoalOverride bool    `json:"goalOverride,omitempty"`
	Approximate  bool    `json:"approximate,omitempty"`
}

// EnergyInput is the slice of the profile the energy model reads.
func (p *Profile) EnergyInput() energy.Input {
	return energy.Input{
		Gender:        p.Gender,
		BirthDate:     p.BirthDate,
		HeightCM:      p.HeightCM,
		WeightKG:      p.WeightKG,
		ActivityLevel: p.ActivityLevel,
	}
}

// GoalPayload rides on the goalChanged event.
type GoalPayload struct {
	CalorieGoal float64
	Override    bool
}

// Manager loads and saves the profile and keeps the derived goal current.
type Manager struct {
	Persistence store.Persistence
	Bus         *bus.Bus

	// Now is the clock for age derivation; nil means time.Now.
	Now func() time.Time
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Load returns the persisted profile, or ErrNoProfile when none exists.
func (m *Manager) Load() (*Profile, error) {
	if m.Persistence == nil {
		return nil, errors.New("profile: no persistence configured")
	}
	p := &Profile{}
	ok, err := m.Persistence.Get(stateKey, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoProfile
	}
	return p, nil
}

// Save persists the profile, recomputing goal and TDEE from the body fields.
// Editing the profile always clears a manual goal override. Publishes
// goalChanged whenever the effective goal moved.
func (m *Manager) Save(p *Profile) error {
	if m.Persistence == nil {
		return errors.New("profile: no persistence configured")
	}
	if p.Mode == "" {
		p.Mode = energy.Maintain
	}

	previous, err := m.Load()
	if err != nil && !errors.Is(err, ErrNoProfile) {
		return err
	}

	result, err := energy.Compute(p.EnergyInput(), p.Mode, m.now())
	if err != nil {
		return err
	}
	p.TDEE = result.TDEE
	p.CalorieGoal = result.CalorieGoal
	p.Approximate = result.Approximate
	p.GoalOverride = false

	if err := m.Persistence.Set(stateKey, p); err != nil {
		return err
	}
	if previous == nil || previous.CalorieGoal != p.CalorieGoal || previous.GoalOverride {
		m.publishGoal(p)
	}
	return nil
}

// SetGoalOverride pins the calorie goal to an explicit value. The override
// survives until the next Save of the profile.
func (m *Manager) SetGoalOverride(goal float64) error {
	if goal <= 0 {
		return errors.New("profile: override goal must be positive")
	}
	p, err := m.Load()
	if err != nil {
		return err
	}
	p.CalorieGoal = goal
	p.GoalOverride = true
	if err := m.Persistence.Set(stateKey, p); err != nil {
		return err
	}
	m.publishGoal(p)
	return nil
}

// Energy recomputes the full energy result for the stored profile, without
// persisting anything. Mode defaults to the profile's stored mode.
func (m *Manager) Energy(mode energy.Mode) (energy.Result, error) {
	p, err := m.Load()
	if err != nil {
		return energy.Result{}, err
	}
	if mode == "" {
		mode = p.Mode
	}
	return energy.Compute(p.EnergyInput(), mode, m.now())
}

func (m *Manager) publishGoal(p *Profile) {
	if m.Bus == nil {
		return
	}
	m.Bus.Publish(bus.GoalChanged, GoalPayload{
		CalorieGoal: p.CalorieGoal,
		Override:    p.GoalOverride,
	})
}
