package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable means every attempt failed and no cached payload, however
// stale, was on hand. Retryable from the user's side.
var ErrUnavailable = errors.New("recommend: service unavailable and nothing cached")

// Result is a recommendation payload plus its provenance. Stale marks a
// degraded result served from an expired cache after the service could not
// be reached; views disclose StaleAt next to the data.
type Result struct {
	Items   []Item
	Stale   bool
	StaleAt time.Time
}

// Plans groups the result's items by plan day.
func (r *Result) Plans() []Plan {
	return GroupByDay(r.Items)
}

// fetchFunc is one attempt against the service.
type fetchFunc func(ctx context.Context) ([]Item, error)

// Fetcher layers the TTL cache and the retry policy over the client. The
// clock and sleeper are injectable so the policy is testable to the second.
type Fetcher struct {
	Client *Client
	Cache  *Cache

	// RetryBound is how many additional attempts follow a failed first one.
	RetryBound int

	// UserID and CalorieGoal parameterize the service call.
	UserID      string
	CalorieGoal float64

	// Now and Sleep default to the real clock.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *Fetcher) sleep(ctx context.Context, d time.Duration) error {
	if f.Sleep != nil {
		return f.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (f *Fetcher) fetch(ctx context.Context) ([]Item, error) {
	return f.Client.Fetch(ctx, f.UserID, f.CalorieGoal)
}

// Get returns recommendations, preferring the fresh cache. With force set
// the cache check is skipped and a refresh is attempted regardless; the
// cached payload still backstops a failed refresh.
func (f *Fetcher) Get(ctx context.Context, force bool) (*Result, error) {
	entry, cached, err := f.Cache.Load()
	if err != nil {
		return nil, err
	}
	now := f.now()
	if cached && !force && entry.ValidAt(now) {
		return &Result{Items: entry.Items}, nil
	}

	items, fetchErr := f.fetchWithRetry(ctx, f.fetch)
	if fetchErr == nil {
		if _, err := f.Cache.Store(items, f.now()); err != nil {
			return nil, err
		}
		return &Result{Items: items}, nil
	}

	if cached {
		return &Result{Items: entry.Items, Stale: true, StaleAt: entry.FetchedAt}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, fetchErr)
}

// fetchWithRetry runs 1+RetryBound attempts with exponential backoff,
// sleeping 2^attempt seconds after the attempt-th failure.
func (f *Fetcher) fetchWithRetry(ctx context.Context, fetch fetchFunc) ([]Item, error) {
	var lastErr error
	for attempt := 0; attempt <= f.RetryBound; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<attempt) * time.Second
			if err := f.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
		items, err := fetch(ctx)
		if err == nil {
			return items, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
