package pantry

import "time"

// Config is the engine-wide configuration, passed explicitly to New. There
// is no process-global state; two engines with different configs can share
// one backend.
type Config struct {
	// Prefix namespaces every key this engine writes. Required.
	Prefix string
	// Version is the global namespace version. Bumping it orphans all
	// previously written keys. 0 => 1.
	Version int
	// TTL is the default snapshot TTL. 0 => 10m.
	TTL time.Duration
	// ForceMiss makes every primary-cache read report a miss without
	// touching the backend. Reads fill from the Store and still write
	// back. Useful for consistency testing.
	ForceMiss bool
	// Disabled bypasses the cache entirely: reads miss and nothing is
	// written back.
	Disabled bool
}

// IndexSpec declares one secondary index on a model. Specs are fixed at
// registration time.
type IndexSpec struct {
	// Attribute being indexed. Required.
	Attribute string
	// Unique marks the index entry for a value as holding at most one id.
	Unique bool
	// Filter further narrows which records belong to the index. When set,
	// invalidation clears entries for every reported record regardless of
	// whether the watched attribute changed, because filter membership
	// cannot be derived from a value diff alone.
	Filter Filter
}

// ModelConfig registers one record model with the engine. T is the snapshot
// type materialized on read.
type ModelConfig[T any] struct {
	// Prefix is the model-local key prefix. Required.
	Prefix string
	// Version is the model-local key version. Bumping it orphans the
	// model's keys without touching other models. 0 => 1.
	Version int
	// TTL overrides Config.TTL for this model. 0 => global default.
	TTL time.Duration
	// Restockable enables the all-records index, MultiGetAll/Restock, and
	// eager re-caching on invalidation.
	Restockable bool
	// Indexes are the model's secondary indices.
	Indexes []IndexSpec
	// New materializes a snapshot from a cached attribute map. Required.
	New func(attrs map[string]any) T
	// BeforeCache, when set, runs once per batch of records about to be
	// cached. Use it to precompute derived attributes cheaply.
	BeforeCache func(records []Record)
}
