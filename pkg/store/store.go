// Package store persists ledger records and small state blobs in a diskv
// key-value tree. It is the only code that touches durable storage; views go
// through the ledger and profile services instead.
package store

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/fatloss/pkg/record"
)

// UnknownDay buckets records whose timestamp never normalized. They are kept
// for raw listing but excluded from every aggregate.
const UnknownDay = "unknown"

// stateCollection holds non-record state: profile, cache entries, badges.
const stateCollection = "state"

// Persistence is the durability contract for ledger records plus a flat
// get/set/remove keyspace for state blobs. Writes are last-write-wins; there
// are no partial writes.
type Persistence interface {
	List(ctx context.Context, kind record.Kind) []*record.Record
	ListDay(ctx context.Context, kind record.Kind, day string) []*record.Record
	MapByDay(ctx context.Context, kind record.Kind) map[string][]*record.Record
	Store(r *record.Record) error
	Delete(r *record.Record) error

	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Remove(key string) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load opens a diskv-backed Persistence rooted at the configured base path.
func Load(cfg *Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.Path
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*record.Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	r := &record.Record{}
	if err := unmarshal(val, r); err != nil {
		return nil, err
	}
	if r.ID == "" {
		r.ID = keyToPathTransform(key).FileName
	}
	return r, nil
}

func (p *persistence) List(ctx context.Context, kind record.Kind) []*record.Record {
	all := make([]*record.Record, 0)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 || pk.Path[0] != kind.String() {
			continue
		}
		r, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, r)
	}
	sortRecords(all)
	return all
}

func (p *persistence) ListDay(ctx context.Context, kind record.Kind, day string) []*record.Record {
	prefix := kind.String() + "-" + day + "-"
	all := make([]*record.Record, 0)
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		r, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, r)
	}
	sortRecords(all)
	return all
}

func (p *persistence) MapByDay(ctx context.Context, kind record.Kind) map[string][]*record.Record {
	grouped := make(map[string][]*record.Record)
	for _, r := range p.List(ctx, kind) {
		grouped[dayOf(r)] = append(grouped[dayOf(r)], r)
	}
	return grouped
}

func (p *persistence) Store(r *record.Record) error {
	key := toKey(r)
	data, err := marshal(r)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) Delete(r *record.Record) error {
	return p.d.Erase(toKey(r))
}

func (p *persistence) Get(key string, v any) (bool, error) {
	full := stateCollection + "-" + key
	if !p.d.Has(full) {
		return false, nil
	}
	data, err := p.d.Read(full)
	if err != nil {
		return false, err
	}
	if err := unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (p *persistence) Set(key string, v any) error {
	data, err := marshal(v)
	if err != nil {
		return err
	}
	return p.d.Write(stateCollection+"-"+key, data)
}

func (p *persistence) Remove(key string) error {
	full := stateCollection + "-" + key
	if !p.d.Has(full) {
		return nil
	}
	return p.d.Erase(full)
}

// dayOf is the single place a record maps to its bucket key.
func dayOf(r *record.Record) string {
	if !r.Normalized() {
		return UnknownDay
	}
	return r.At.Day()
}

// sortRecords orders chronologically ascending; records without a canonical
// instant sink to the end, ties break on ID for stability.
func sortRecords(records []*record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i], records[j]
		lt, rt := left.At.Time, right.At.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

// Keys look like `kind-YYYY-MM-DD-id`; every dash-separated segment except
// the last becomes a directory, so records nest kind/year/month/day on disk.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(r *record.Record) string {
	return fmt.Sprintf("%s-%s-%s", r.Kind, dayOf(r), r.ID)
}
