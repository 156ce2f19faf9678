package store

import (
	"context"

	"github.com/coocood/freecache"
	"github.com/goccy/go-json"
)

// Compile-time interface check.
var _ Store = (*TieredStore)(nil)

// DefaultCacheSize is the freecache size used by NewTieredStore.
const DefaultCacheSize = 1 << 20

// TieredStore wraps a persistent backend (durable path) with a freecache
// read tier (fast path). Commits go to the persistent store first and are then
// written through to cached records; loads check the cache first and fall back
// to the persistent store on a miss.
type TieredStore struct {
	cache      *freecache.Cache
	persistent Store
}

// NewTieredStore creates a TieredStore backed by the given persistent store
// with a cache of DefaultCacheSize bytes.
func NewTieredStore(persistent Store) *TieredStore {
	return NewTieredStoreSize(persistent, DefaultCacheSize)
}

// NewTieredStoreSize is NewTieredStore with an explicit cache size in bytes.
// freecache enforces its own minimum size.
func NewTieredStoreSize(persistent Store, cacheSize int) *TieredStore {
	return &TieredStore{
		cache:      freecache.NewCache(cacheSize),
		persistent: persistent,
	}
}

// Load reads from the cache first. On a miss it falls back to the persistent
// store and backfills the cache.
func (t *TieredStore) Load(ctx context.Context, namespace string) (Record, error) {
	if r, ok := t.cached(namespace); ok {
		return r, nil
	}

	r, err := t.persistent.Load(ctx, namespace)
	if err != nil {
		return Record{}, err
	}
	t.fill(namespace, r)
	return r, nil
}

// Commit writes through to the persistent backend, then refreshes the cached
// copy if one exists. The persistent store is the source of truth.
func (t *TieredStore) Commit(ctx context.Context, namespace string, batch Record) error {
	if err := t.persistent.Commit(ctx, namespace, batch); err != nil {
		t.cache.Del([]byte(namespace))
		return err
	}

	if r, ok := t.cached(namespace); ok {
		r.Merge(batch)
		t.fill(namespace, r)
	}
	return nil
}

// Reset removes the namespace from both tiers.
func (t *TieredStore) Reset(ctx context.Context, namespace string) error {
	t.cache.Del([]byte(namespace))
	return t.persistent.Reset(ctx, namespace)
}

// Close closes the persistent backend. The cache needs no cleanup.
func (t *TieredStore) Close() error {
	return t.persistent.Close()
}

func (t *TieredStore) cached(namespace string) (Record, bool) {
	raw, err := t.cache.Get([]byte(namespace))
	if err != nil {
		return Record{}, false
	}

	r := NewRecord()
	if err := json.Unmarshal(raw, &r); err != nil {
		t.cache.Del([]byte(namespace))
		return Record{}, false
	}
	if r.Ints == nil {
		r.Ints = make(map[string]int64)
	}
	if r.Bools == nil {
		r.Bools = make(map[string]bool)
	}
	return r, true
}

func (t *TieredStore) fill(namespace string, r Record) {
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	// A failed Set only means the next Load goes to the persistent store.
	_ = t.cache.Set([]byte(namespace), raw, 0)
}
