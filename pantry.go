package pantry

import (
	"context"
	"fmt"
	"time"

	"github.com/unkn0wn-root/pantry/backend"
	c "github.com/unkn0wn-root/pantry/codec"
	"github.com/unkn0wn-root/pantry/internal/keys"
)

const defaultTTL = 10 * time.Minute

type pantry[T any] struct {
	cfg     Config
	model   ModelConfig[T]
	backend backend.Backend
	store   Store
	log     Logger
	hooks   Hooks

	keys    keys.Codec
	ttl     time.Duration
	primary *primaryCache
	indexes *indexSet
	all     *allIndex
}

func newPantry[T any](opts Options[T]) (*pantry[T], error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("pantry: backend is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("pantry: store is required")
	}
	if opts.Config.Prefix == "" {
		return nil, fmt.Errorf("pantry: config prefix is required")
	}
	if opts.Model.Prefix == "" {
		return nil, fmt.Errorf("pantry: model prefix is required")
	}
	if opts.Model.New == nil {
		return nil, fmt.Errorf("pantry: model snapshot factory is required")
	}
	for _, spec := range opts.Model.Indexes {
		if spec.Attribute == "" {
			return nil, fmt.Errorf("pantry: index spec without attribute")
		}
	}

	p := &pantry[T]{
		cfg:     opts.Config,
		model:   opts.Model,
		backend: opts.Backend,
		store:   opts.Store,
	}

	// defaults
	p.log = coalesce[Logger](opts.Logger, NopLogger{})
	p.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	codec := opts.Codec
	if codec == nil {
		codec = c.Msgpack[map[string]any]{}
	}
	p.ttl = coalesce(opts.Model.TTL, coalesce(opts.Config.TTL, defaultTTL))

	p.keys = keys.Codec{
		GlobalPrefix:  opts.Config.Prefix,
		GlobalVersion: coalesce(opts.Config.Version, 1),
		LocalPrefix:   opts.Model.Prefix,
		LocalVersion:  coalesce(opts.Model.Version, 1),
	}

	p.primary = &primaryCache{
		backend:   opts.Backend,
		codec:     codec,
		keys:      p.keys,
		ttl:       p.ttl,
		forceMiss: opts.Config.ForceMiss || opts.Config.Disabled,
		log:       p.log,
		hooks:     p.hooks,
	}
	p.indexes = &indexSet{
		backend: opts.Backend,
		keys:    p.keys,
		specs:   opts.Model.Indexes,
		log:     p.log,
		hooks:   p.hooks,
	}
	if opts.Model.Restockable {
		p.all = &allIndex{
			backend: opts.Backend,
			key:     p.keys.All(),
			ttl:     p.ttl,
		}
	}
	return p, nil
}

func (p *pantry[T]) Close(ctx context.Context) error {
	return p.backend.Close(ctx)
}

func (p *pantry[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	got, err := p.MultiGet(ctx, []string{id})
	if err != nil {
		return zero, false, err
	}
	v, ok := got[id]
	if !ok {
		return zero, false, nil
	}
	return v, true, nil
}

func (p *pantry[T]) MultiGet(ctx context.Context, ids []string) (map[string]T, error) {
	out := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ids = uniq(ids)

	cached, err := p.primary.multiGet(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, attrs := range cached {
		out[id] = p.model.New(attrs)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	recs, err := p.store.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	if err := p.storeRecords(ctx, recs); err != nil {
		return nil, err
	}
	// ids the store omitted stay unmapped
	for _, r := range recs {
		out[r.ID()] = p.model.New(r.Attributes())
	}
	return out, nil
}

// storeRecords is the write-back path shared by miss fills, index population,
// invalidation re-stores, and Restock. It runs the model's pre-cache hook
// once per batch, writes snapshots without re-parsing them, and registers ids
// in the all-records index for restockable models.
func (p *pantry[T]) storeRecords(ctx context.Context, recs []Record) error {
	if len(recs) == 0 || p.cfg.Disabled {
		return nil
	}
	if p.model.BeforeCache != nil {
		p.model.BeforeCache(recs)
	}
	if err := p.primary.multiSet(ctx, recs); err != nil {
		return err
	}
	if p.all != nil {
		ids := make([]string, len(recs))
		for i, r := range recs {
			ids[i] = r.ID()
		}
		return p.all.add(ctx, ids, time.Now())
	}
	return nil
}

func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
