// Package ledger provides the append/remove/query operations over the
// persisted record collections, plus the day-bucket aggregation every view
// reads. It is the only code that decides which calendar day a record
// belongs to.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/fatloss/pkg/bus"
	"tableflip.dev/fatloss/pkg/record"
	"tableflip.dev/fatloss/pkg/store"
	"tableflip.dev/fatloss/pkg/timeutil"
)

var (
	// ErrValidation rejects an append whose record fails the field rules.
	// Nothing is persisted.
	ErrValidation = errors.New("ledger: invalid record")

	// ErrNotFound reports a removal of a record that is no longer there,
	// for example because another view already deleted it. Benign.
	ErrNotFound = errors.New("ledger: record not found")
)

// DayBucket is one day's records of one kind, chronological, with the
// memoized total the views display.
type DayBucket struct {
	Day     string
	Records []*record.Record
	Total   float64
}

// ChangePayload rides on the ledgerChanged event.
type ChangePayload struct {
	Kind record.Kind
	Day  string
}

// Service wraps persistence with validation, time normalization, total
// upkeep, and change notification. Views never reach past it to storage.
type Service struct {
	Persistence store.Persistence
	Bus         *bus.Bus
}

// Append validates and stores a record, assigning its canonical instant from
// RawTime when one is not already set. A record whose timestamp cannot be
// normalized is still stored — under the unknown bucket, excluded from
// aggregates — so no user data is silently dropped; callers can inspect
// Normalized on the returned record to surface a notice.
func (s *Service) Append(ctx context.Context, r *record.Record) (*record.Record, error) {
	if s.Persistence == nil {
		return nil, errors.New("ledger: no persistence configured")
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if !r.Normalized() && r.RawTime != "" {
		if at, err := timeutil.Normalize(r.RawTime); err == nil {
			r.At = record.Timestamp{Time: at}
		}
	}

	if err := s.Persistence.Store(r); err != nil {
		return nil, err
	}

	day := s.dayOf(r)
	if err := s.recomputeTotal(ctx, r.Kind, day); err != nil {
		return nil, err
	}
	s.publish(r.Kind, day)
	return r, nil
}

// Remove deletes the index-th record (chronological order) of the bucket and
// recomputes its total. Out-of-range indexes mean someone else got there
// first and fail with ErrNotFound.
func (s *Service) Remove(ctx context.Context, kind record.Kind, day string, index int) error {
	if s.Persistence == nil {
		return errors.New("ledger: no persistence configured")
	}
	records := s.Persistence.ListDay(ctx, kind, day)
	if index < 0 || index >= len(records) {
		return fmt.Errorf("%w: %s %s index %d", ErrNotFound, kind, day, index)
	}
	if err := s.Persistence.Delete(records[index]); err != nil {
		return err
	}
	if err := s.recomputeTotal(ctx, kind, day); err != nil {
		return err
	}
	s.publish(kind, day)
	return nil
}

// QueryDay returns the bucket for one day, empty when nothing was recorded.
func (s *Service) QueryDay(ctx context.Context, kind record.Kind, day string) (DayBucket, error) {
	if s.Persistence == nil {
		return DayBucket{}, errors.New("ledger: no persistence configured")
	}
	records := s.Persistence.ListDay(ctx, kind, day)
	total, ok, err := s.memoizedTotal(kind, day)
	if err != nil {
		return DayBucket{}, err
	}
	if !ok {
		total = sumAmounts(records)
		if err := s.storeTotal(kind, day, total); err != nil {
			return DayBucket{}, err
		}
	}
	return DayBucket{Day: day, Records: records, Total: total}, nil
}

// QueryAll returns every persisted record of a kind, chronological, for
// cross-day search and filtering.
func (s *Service) QueryAll(ctx context.Context, kind record.Kind) ([]*record.Record, error) {
	if s.Persistence == nil {
		return nil, errors.New("ledger: no persistence configured")
	}
	return s.Persistence.List(ctx, kind), nil
}

// History returns one bucket per day, most recent day first, within-day
// chronological. Records without a canonical day are excluded; see Unfiled.
func (s *Service) History(ctx context.Context, kind record.Kind) ([]DayBucket, error) {
	if s.Persistence == nil {
		return nil, errors.New("ledger: no persistence configured")
	}
	grouped := s.Persistence.MapByDay(ctx, kind)
	delete(grouped, store.UnknownDay)
	return bucketize(grouped), nil
}

// Unfiled returns records whose timestamp never normalized. They appear in
// no aggregate but stay visible here.
func (s *Service) Unfiled(ctx context.Context, kind record.Kind) ([]*record.Record, error) {
	if s.Persistence == nil {
		return nil, errors.New("ledger: no persistence configured")
	}
	return s.Persistence.ListDay(ctx, kind, store.UnknownDay), nil
}

func (s *Service) dayOf(r *record.Record) string {
	if !r.Normalized() {
		return store.UnknownDay
	}
	return r.At.Day()
}

func (s *Service) publish(kind record.Kind, day string) {
	if s.Bus == nil {
		return
	}
	s.Bus.Publish(bus.LedgerChanged, ChangePayload{Kind: kind, Day: day})
}
