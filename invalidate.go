package pantry

import "context"

// Invalidate reports committed writes and deletes. Primary entries for the
// reported records are dropped, every declared index is reconciled against
// the change diffs, and restockable models eagerly re-cache the surviving
// records so bulk reads stay warm.
func (p *pantry[T]) Invalidate(ctx context.Context, changes ...Change) error {
	if len(changes) == 0 {
		return nil
	}

	ids := make([]string, len(changes))
	for i, ch := range changes {
		ids[i] = ch.Record.ID()
	}
	if err := p.primary.del(ctx, ids); err != nil {
		return err
	}

	for _, spec := range p.indexes.specs {
		if err := p.indexes.invalidate(ctx, spec, changes); err != nil {
			return err
		}
	}

	if p.model.Restockable {
		alive := make([]Record, 0, len(changes))
		for _, ch := range changes {
			if !ch.Record.Destroyed() {
				alive = append(alive, ch.Record)
			}
		}
		// best-effort repopulation; the result is discarded, so snapshots
		// are written without being re-parsed
		if err := p.storeRecords(ctx, alive); err != nil {
			p.log.Warn("re-store after invalidate failed", Fields{"model": p.model.Prefix, "err": err})
		}
	}
	return nil
}

// InvalidateIDs is Invalidate for callers holding bare ids. When indices are
// declared (or the model restocks eagerly), the ids are resolved to records
// with one store query first; resolved records carry no diff, so index
// reconciliation assumes their membership moved.
func (p *pantry[T]) InvalidateIDs(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	ids = uniq(ids)
	if err := p.primary.del(ctx, ids); err != nil {
		return err
	}
	if len(p.indexes.specs) == 0 && !p.model.Restockable {
		return nil
	}

	recs, err := p.store.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	changes := make([]Change, len(recs))
	for i, r := range recs {
		changes[i] = Change{Record: r}
	}

	for _, spec := range p.indexes.specs {
		if err := p.indexes.invalidate(ctx, spec, changes); err != nil {
			return err
		}
	}
	if p.model.Restockable {
		if err := p.storeRecords(ctx, recs); err != nil {
			p.log.Warn("re-store after invalidate failed", Fields{"model": p.model.Prefix, "err": err})
		}
	}
	return nil
}
