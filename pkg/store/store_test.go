package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/fatloss/pkg/record"
)

func tempPersistence(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(&Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

func stamped(r *record.Record, at time.Time) *record.Record {
	r.At = record.Timestamp{Time: at}
	return r
}

func TestStoreAndListDay(t *testing.T) {
	p := tempPersistence(t)
	ctx := context.Background()
	day := time.Date(2025, 8, 23, 9, 0, 0, 0, time.Local)

	late := stamped(record.NewDiet("dinner", 300, 520, record.Nutrition{}), day.Add(10*time.Hour))
	early := stamped(record.NewDiet("breakfast", 150, 210, record.Nutrition{}), day)
	other := stamped(record.NewDiet("lunch", 200, 400, record.Nutrition{}), day.AddDate(0, 0, 1))

	for _, r := range []*record.Record{late, early, other} {
		if err := p.Store(r); err != nil {
			t.Fatalf("store: %v", err)
		}
	}

	got := p.ListDay(ctx, record.Diet, "2025-08-23")
	if len(got) != 2 {
		t.Fatalf("expected 2 records for the day, got %d", len(got))
	}
	if got[0].Dish != "breakfast" || got[1].Dish != "dinner" {
		t.Fatalf("expected chronological order, got %s then %s", got[0].Dish, got[1].Dish)
	}

	all := p.List(ctx, record.Diet)
	if len(all) != 3 {
		t.Fatalf("expected 3 records total, got %d", len(all))
	}

	grouped := p.MapByDay(ctx, record.Diet)
	if len(grouped["2025-08-23"]) != 2 || len(grouped["2025-08-24"]) != 1 {
		t.Fatalf("unexpected grouping: %v", grouped)
	}
}

func TestDeleteRecord(t *testing.T) {
	p := tempPersistence(t)
	ctx := context.Background()

	r := stamped(record.NewWater(300), time.Date(2025, 8, 23, 9, 0, 0, 0, time.Local))
	if err := p.Store(r); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := p.Delete(r); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := p.ListDay(ctx, record.Water, "2025-08-23"); len(got) != 0 {
		t.Fatalf("expected empty day after delete, got %d", len(got))
	}
}

func TestUnnormalizedRecordsBucketUnderUnknown(t *testing.T) {
	p := tempPersistence(t)
	ctx := context.Background()

	r := record.NewDiet("mystery", 100, 100, record.Nutrition{})
	r.At = record.Timestamp{}
	r.RawTime = "yesterday-ish"
	if err := p.Store(r); err != nil {
		t.Fatalf("store: %v", err)
	}

	if got := p.ListDay(ctx, record.Diet, UnknownDay); len(got) != 1 {
		t.Fatalf("expected record under unknown day, got %d", len(got))
	}
}

func TestStateRoundTrip(t *testing.T) {
	p := tempPersistence(t)

	type blob struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := p.Set("profile", blob{Name: "x", Count: 3}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got blob
	ok, err := p.Get("profile", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "x" || got.Count != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := p.Remove("profile"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := p.Get("profile", &got); ok {
		t.Fatal("expected key gone after remove")
	}
	if err := p.Remove("profile"); err != nil {
		t.Fatalf("second remove should be benign: %v", err)
	}
}
