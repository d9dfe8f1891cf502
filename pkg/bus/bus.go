// Package bus is the in-process notification registry that keeps
// concurrently-visible views in sync. It is constructed at the composition
// root and handed to whoever needs it; there is deliberately no package-level
// instance.
package bus

import "sync"

// Event names published by the core services.
const (
	LedgerChanged = "ledgerChanged"
	GoalChanged   = "goalChanged"
	BadgeUnlocked = "badgeUnlocked"
)

// Handler receives the payload passed to Publish.
type Handler func(payload any)

// Subscription identifies one registered handler so it can be removed when
// the owning view goes away. A subscription that outlives its view is a leak.
type Subscription struct {
	event string
	id    int
}

type registration struct {
	id      int
	handler Handler
}

// Bus is a named-event publish/subscribe registry. Publish runs handlers
// synchronously in registration order, so a handler always observes state
// mutated before the publish.
type Bus struct {
	mu     sync.Mutex
	nextID int
	events map[string][]registration
}

func New() *Bus {
	return &Bus{events: make(map[string][]registration)}
}

// Subscribe registers handler for event and returns the subscription used to
// remove it again.
func (b *Bus) Subscribe(event string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.events[event] = append(b.events[event], registration{id: b.nextID, handler: handler})
	return Subscription{event: event, id: b.nextID}
}

// Unsubscribe removes the subscription. Removing one that is already gone is
// a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	regs := b.events[sub.event]
	for i, reg := range regs {
		if reg.id == sub.id {
			b.events[sub.event] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish invokes every handler currently registered for event, in
// registration order. Ordering across different events is not specified.
func (b *Bus) Publish(event string, payload any) {
	b.mu.Lock()
	regs := make([]registration, len(b.events[event]))
	copy(regs, b.events[event])
	b.mu.Unlock()

	for _, reg := range regs {
		reg.handler(payload)
	}
}
