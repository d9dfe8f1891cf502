package ledger

import (
	"context"
	"sort"

	"tableflip.dev/fatloss/pkg/record"
	"tableflip.dev/fatloss/pkg/store"
)

// totalsKey is the state-blob key prefix for memoized day totals, one blob
// per kind mapping day key to total.
func totalsKey(kind record.Kind) string {
	return "totals." + kind.String()
}

// recomputeTotal folds the bucket and persists the memo. It runs after every
// insert and delete, before any reader can observe the bucket, so the memo
// never disagrees with the records.
func (s *Service) recomputeTotal(ctx context.Context, kind record.Kind, day string) error {
	if day == store.UnknownDay {
		// Unknown-day records participate in no aggregate.
		return nil
	}
	total := sumAmounts(s.Persistence.ListDay(ctx, kind, day))
	if err := s.storeTotal(kind, day, total); err != nil {
		// The record is already stored; a stale memo must not outlive it.
		// Drop the memo so the next read recomputes from the records.
		s.invalidateTotal(kind, day)
		return err
	}
	return nil
}

// invalidateTotal removes the day's memo, falling back to dropping the whole
// blob when the store refuses the narrower write.
func (s *Service) invalidateTotal(kind record.Kind, day string) {
	totals, err := s.loadTotals(kind)
	if err == nil {
		delete(totals, day)
		if err := s.Persistence.Set(totalsKey(kind), totals); err == nil {
			return
		}
	}
	_ = s.Persistence.Remove(totalsKey(kind))
}

func (s *Service) storeTotal(kind record.Kind, day string, total float64) error {
	totals, err := s.loadTotals(kind)
	if err != nil {
		return err
	}
	totals[day] = total
	return s.Persistence.Set(totalsKey(kind), totals)
}

func (s *Service) memoizedTotal(kind record.Kind, day string) (float64, bool, error) {
	totals, err := s.loadTotals(kind)
	if err != nil {
		return 0, false, err
	}
	total, ok := totals[day]
	return total, ok, nil
}

func (s *Service) loadTotals(kind record.Kind) (map[string]float64, error) {
	totals := make(map[string]float64)
	if _, err := s.Persistence.Get(totalsKey(kind), &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// sumAmounts folds a bucket into its total. Records without a canonical
// instant are excluded from every aggregate.
func sumAmounts(records []*record.Record) float64 {
	total := 0.0
	for _, r := range records {
		if !r.Normalized() {
			continue
		}
		total += r.Amount()
	}
	return total
}

// NutritionTotals sums a day's macro breakdown for diet records.
func (s *Service) NutritionTotals(ctx context.Context, day string) (record.Nutrition, error) {
	bucket, err := s.QueryDay(ctx, record.Diet, day)
	if err != nil {
		return record.Nutrition{}, err
	}
	var n record.Nutrition
	for _, r := range bucket.Records {
		if !r.Normalized() {
			continue
		}
		n.Protein += r.Nutrition.Protein
		n.Carbs += r.Nutrition.Carbs
		n.Fat += r.Nutrition.Fat
		n.Fiber += r.Nutrition.Fiber
	}
	return n, nil
}

// BurnedTotal sums a day's calories burned across exercise records, which is
// a different fold than the bucket total (minutes).
func (s *Service) BurnedTotal(ctx context.Context, day string) (float64, error) {
	bucket, err := s.QueryDay(ctx, record.Exercise, day)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, r := range bucket.Records {
		if !r.Normalized() {
			continue
		}
		total += r.CaloriesBurned
	}
	return total, nil
}

// bucketize orders grouped records into day buckets, most recent day first.
// Day keys are ISO dates, so string order is date order.
func bucketize(grouped map[string][]*record.Record) []DayBucket {
	buckets := make([]DayBucket, 0, len(grouped))
	for day, records := range grouped {
		buckets = append(buckets, DayBucket{
			Day:     day,
			Records: records,
			Total:   sumAmounts(records),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Day > buckets[j].Day
	})
	return buckets
}
