package pantry

import (
	"context"
	"time"
)

// MultiGetAll answers "every currently cached record" from the all-records
// index. A non-empty index resolves purely through the primary cache: a
// member whose snapshot expired independently of its index score is silently
// dropped, trading completeness for a bounded-cost read. The next Restock
// repairs the set.
func (p *pantry[T]) MultiGetAll(ctx context.Context) (map[string]T, error) {
	if p.all == nil {
		return nil, &ConfigurationError{
			Model:  p.model.Prefix,
			Op:     "MultiGetAll",
			Reason: "model is not restockable",
		}
	}
	if p.cfg.ForceMiss || p.cfg.Disabled {
		// cache bypass: rebuild the full set from the store
		return p.Restock(ctx)
	}

	members, err := p.all.current(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return p.Restock(ctx)
	}

	cached, err := p.primary.multiGet(ctx, members)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(cached))
	for id, attrs := range cached {
		out[id] = p.model.New(attrs)
	}
	return out, nil
}

// Restock scans the whole store into the cache and the all-records index,
// returning the restocked set keyed by id. No-op for non-restockable models.
func (p *pantry[T]) Restock(ctx context.Context) (map[string]T, error) {
	out := make(map[string]T)
	if !p.model.Restockable {
		return out, nil
	}

	recs, err := p.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.storeRecords(ctx, recs); err != nil {
		return nil, err
	}
	for _, r := range recs {
		out[r.ID()] = p.model.New(r.Attributes())
	}
	p.hooks.Restocked(len(out))
	p.log.Debug("restocked", Fields{"model": p.model.Prefix, "count": len(out)})
	return out, nil
}

// Tidy prunes expired members from the all-records index. Purely a size
// bound; correctness never depends on it.
func (p *pantry[T]) Tidy(ctx context.Context) error {
	if p.all == nil {
		return nil
	}
	removed, err := p.all.prune(ctx, time.Now())
	if err != nil {
		return err
	}
	if removed > 0 {
		p.hooks.Pruned(removed)
	}
	return nil
}
