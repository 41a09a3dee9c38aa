package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
)

// bucketEntry is one (key, refs) pair, kept as a slice entry rather than
// a map so CategoryKey — a struct — survives a JSON round trip without
// a custom MarshalText.
type bucketEntry struct {
	Key  catalogue.CategoryKey `json:"key"`
	Refs []catalogue.Ref       `json:"refs"`
}

// Snapshot is the serializable form of an Index, used to warm-start a
// new process from a previously built classification instead of
// rescanning every pack.
type Snapshot struct {
	Buckets   []bucketEntry            `json:"buckets"`
	ByLocalID map[string][]catalogue.Ref `json:"by_local_id"`
}

// Snapshot captures idx's current classification. Buckets are ordered by
// key, so the same index always serializes to the same bytes.
func (idx *Index) Snapshot() Snapshot {
	snap := Snapshot{ByLocalID: idx.byLocalID}
	for key, refs := range idx.buckets {
		snap.Buckets = append(snap.Buckets, bucketEntry{Key: key, Refs: refs})
	}
	sort.Slice(snap.Buckets, func(i, j int) bool {
		return snap.Buckets[i].Key.String() < snap.Buckets[j].Key.String()
	})
	return snap
}

// FromSnapshot rebuilds an Index from a previously captured Snapshot.
// The rebuilt Index shares the same read-only contract as one built via
// Build, but does not touch store until a caller asks it to.
func FromSnapshot(store catalogue.ItemStore, snap Snapshot) *Index {
	idx := &Index{
		buckets:   make(map[catalogue.CategoryKey][]catalogue.Ref, len(snap.Buckets)),
		byLocalID: snap.ByLocalID,
		store:     store,
	}
	if idx.byLocalID == nil {
		idx.byLocalID = make(map[string][]catalogue.Ref)
	}
	for _, b := range snap.Buckets {
		idx.buckets[b.Key] = b.Refs
	}
	return idx
}

// RedisCache persists LookupIndex snapshots in Redis so a multi-process
// deployment doesn't rebuild the classification on every cold start.
// It is an optional warm-start path: callers fall back to Build on a
// cache miss or read error.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache wraps client. ttl governs how long a snapshot is trusted
// before a fresh Build is required; pass 0 to disable expiry.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(sessionKey string) string {
	return fmt.Sprintf("heromancer:lookup-index:%s", sessionKey)
}

// Save writes idx's snapshot under sessionKey.
func (c *RedisCache) Save(ctx context.Context, sessionKey string, idx *Index) error {
	data, err := json.Marshal(idx.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal lookup index: %w", err)
	}
	return c.client.Set(ctx, cacheKey(sessionKey), data, c.ttl).Err()
}

// Load reads a previously saved snapshot and rebuilds an Index bound to
// store. Returns (nil, nil) on a cache miss, distinct from a Redis error.
func (c *RedisCache) Load(ctx context.Context, sessionKey string, store catalogue.ItemStore) (*Index, error) {
	data, err := c.client.Get(ctx, cacheKey(sessionKey)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lookup index: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal lookup index: %w", err)
	}
	return FromSnapshot(store, snap), nil
}

// Invalidate drops sessionKey's cached snapshot, e.g. when the set of
// active packs changes.
func (c *RedisCache) Invalidate(ctx context.Context, sessionKey string) error {
	return c.client.Del(ctx, cacheKey(sessionKey)).Err()
}
