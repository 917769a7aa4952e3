package pantry

import (
	"context"

	"github.com/unkn0wn-root/pantry/backend"
	c "github.com/unkn0wn-root/pantry/codec"
)

// Pantry is the public caching API for one record model. T is the snapshot
// type returned on reads. Absent records are absent map entries, never
// errors; the only engine-level error is *ConfigurationError.
type Pantry[T any] interface {
	// Get reads one record by id, filling from the Store on a miss.
	Get(ctx context.Context, id string) (v T, ok bool, err error)
	// MultiGet reads many ids in one batch. Ids the Store no longer knows
	// are left out of the result.
	MultiGet(ctx context.Context, ids []string) (map[string]T, error)

	// GetBy reads records whose indexed attribute equals value.
	GetBy(ctx context.Context, attribute string, value any) ([]T, error)
	// MultiGetBy reads records for many values of one indexed attribute,
	// keyed by the queried value. For a unique index each slice holds at
	// most one record.
	MultiGetBy(ctx context.Context, attribute string, values []any) (map[any][]T, error)

	// MultiGetAll returns every currently cached record of a restockable
	// model, restocking from the Store when the all-records index is empty.
	MultiGetAll(ctx context.Context) (map[string]T, error)

	// Invalidate reports committed writes/deletes. Primary entries are
	// dropped and secondary indices reconciled against each Change's diff.
	Invalidate(ctx context.Context, changes ...Change) error
	// InvalidateIDs is Invalidate for callers that only hold ids; records
	// are resolved through the Store before index reconciliation.
	InvalidateIDs(ctx context.Context, ids ...string) error

	// Restock scans the whole Store into the cache. No-op for models that
	// are not restockable.
	Restock(ctx context.Context) (map[string]T, error)
	// Tidy prunes expired members from the all-records index. Never needed
	// for correctness.
	Tidy(ctx context.Context) error

	Close(ctx context.Context) error
}

// Options assemble one model's engine. Config, Model, Backend and Store are
// required; the rest default sensibly.
type Options[T any] struct {
	Config Config
	Model  ModelConfig[T]

	Backend backend.Backend
	Store   Store

	Codec  c.Codec[map[string]any] // nil => codec.Msgpack
	Logger Logger                  // nil => NopLogger
	Hooks  Hooks                   // nil => NopHooks
}

func New[T any](opts Options[T]) (Pantry[T], error) {
	return newPantry[T](opts)
}
