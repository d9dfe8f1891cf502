package commands

import (
	"tableflip.dev/fatloss/pkg/badges"
	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/ledger"
	"tableflip.dev/fatloss/pkg/profile"
	"tableflip.dev/fatloss/pkg/recommend"
	"tableflip.dev/fatloss/pkg/store"
)

// services is the composition root: one bus, one persistence handle, and the
// domain services wired over them.
type services struct {
	config      *store.Config
	persistence store.Persistence
	bus         *bus.Bus
	ledger      *ledger.Service
	profile     *profile.Manager
	badges      *badges.Tracker
}

func loadServices() (*services, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}

	b := bus.New()
	led := &ledger.Service{Persistence: p, Bus: b}
	prof := &profile.Manager{Persistence: p, Bus: b}
	return &services{
		config:      cfg,
		persistence: p,
		bus:         b,
		ledger:      led,
		profile:     prof,
		badges: &badges.Tracker{
			Ledger:      led,
			Profile:     prof,
			Persistence: p,
			Bus:         b,
		},
	}, nil
}

// fetcher builds the recommendation pipeline from the config and the stored
// profile's calorie goal when one exists.
func (s *services) fetcher() *recommend.Fetcher {
	goal := 0.0
	if p, err := s.profile.Load(); err == nil {
		goal = p.CalorieGoal
	}
	return &recommend.Fetcher{
		Client: &recommend.Client{
			BaseURL: s.config.ServiceURL,
			Timeout: s.config.AttemptTimeout,
		},
		Cache: &recommend.Cache{
			Persistence: s.persistence,
			TTL:         s.config.CacheTTL,
		},
		RetryBound:  s.config.RetryBound,
		CalorieGoal: goal,
	}
}
