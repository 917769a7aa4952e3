// Package backend defines the cache storage abstraction used by pantry.
//
// Implementations MUST be byte-for-byte transparent for key/value entries:
// MGet must return exactly the same []byte previously passed to MSet for a
// key. Foreign writes under pantry-owned keys may be treated as corruption by
// strict wire-format validation and deleted.
//
// Every method is one logical batch. Implementations backed by a remote store
// should issue the whole batch in a single pipelined round trip. Pipelining
// guarantees ordered execution, not atomicity; pantry tolerates interleaving
// by rebuilding indices from the backing store on the next read.
package backend

import (
	"context"
	"time"
)

// Backend is the full cache-side contract: a TTL'd byte store plus unordered
// string sets, a scored set, and key-existence checks. Must be safe for
// concurrent use.
type Backend interface {
	// MGet returns the values for the given keys. Missing keys are absent
	// from the result map; a present key never maps to nil.
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// MSet stores every entry with the given TTL. ttl <= 0 means no expiry.
	MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error

	// Del removes keys of any type (value, set, sorted set). Best-effort;
	// missing keys are not an error.
	Del(ctx context.Context, keys []string) error

	// SAdd adds members to each key's unordered set, creating sets as
	// needed. Member slices may be empty for keys already handled elsewhere
	// in the batch.
	SAdd(ctx context.Context, members map[string][]string) error

	// SMembers returns the members of each set. Keys that do not exist map
	// to an empty slice; use Exists to tell the two apart.
	SMembers(ctx context.Context, keys []string) (map[string][]string, error)

	// SRem removes members from a single set.
	SRem(ctx context.Context, key string, members []string) error

	// Exists reports, per key, whether the key is present at all.
	Exists(ctx context.Context, keys []string) (map[string]bool, error)

	// ZAdd upserts members with scores into a sorted set. Re-adding a
	// member updates its score.
	ZAdd(ctx context.Context, key string, members map[string]float64) error

	// ZRangeByScore returns members with min <= score <= max. Pass
	// math.Inf(1) for an unbounded max.
	ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error)

	// ZRemRangeByScore removes members with min <= score < max (max is
	// exclusive) and returns how many were removed.
	ZRemRangeByScore(ctx context.Context, key string, min, max float64) (int64, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
