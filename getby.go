package pantry

import (
	"context"

	"github.com/unkn0wn-root/pantry/internal/keys"
)

func (p *pantry[T]) GetBy(ctx context.Context, attribute string, value any) ([]T, error) {
	got, err := p.MultiGetBy(ctx, attribute, []any{value})
	if err != nil {
		return nil, err
	}
	return got[value], nil
}

func (p *pantry[T]) MultiGetBy(ctx context.Context, attribute string, values []any) (map[any][]T, error) {
	spec, ok := p.indexes.spec(attribute)
	if !ok {
		return nil, &ConfigurationError{
			Model:  p.model.Prefix,
			Op:     "MultiGetBy",
			Reason: "no index declared for attribute " + attribute,
		}
	}

	out := make(map[any][]T, len(values))
	if len(values) == 0 {
		return out, nil
	}
	values = uniqValues(values)

	hits, missing, err := p.indexes.multiGet(ctx, spec, values)
	if err != nil {
		return nil, err
	}

	// miss path: one filtered store query for all missing values, group by
	// the queried value, index everything (empty groups included), cache
	// the records
	var fetched map[string][]Record
	if len(missing) > 0 {
		p.hooks.IndexReadThrough(attribute, len(missing))

		recs, err := p.store.FindByAttribute(ctx, attribute, missing, spec.Filter)
		if err != nil {
			return nil, err
		}

		byToken := make(map[string]any, len(missing))
		byValue := make(map[any][]string, len(missing))
		fetched = make(map[string][]Record, len(missing))
		for _, v := range missing {
			byToken[keys.ValueToken(v)] = v
			byValue[v] = nil
		}
		for _, r := range recs {
			tok := keys.ValueToken(r.Attributes()[attribute])
			v, ok := byToken[tok]
			if !ok {
				continue // store returned a record outside the queried values
			}
			byValue[v] = append(byValue[v], r.ID())
			fetched[tok] = append(fetched[tok], r)
		}

		if err := p.indexes.populate(ctx, spec, byValue); err != nil {
			return nil, err
		}
		if err := p.storeRecords(ctx, recs); err != nil {
			return nil, err
		}
	}

	// resolve index hits through the primary cache (with store fallback);
	// ids whose record is gone resolve to no result
	var hitIDs []string
	for _, ids := range hits {
		hitIDs = append(hitIDs, ids...)
	}
	resolved, err := p.MultiGet(ctx, hitIDs)
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		if ids, ok := hits[v]; ok {
			rs := make([]T, 0, len(ids))
			for _, id := range ids {
				if snap, ok := resolved[id]; ok {
					rs = append(rs, snap)
				}
			}
			if spec.Unique && len(rs) > 1 {
				rs = rs[:1]
			}
			out[v] = rs
			continue
		}
		recs := fetched[keys.ValueToken(v)]
		rs := make([]T, 0, len(recs))
		for _, r := range recs {
			if r.Destroyed() {
				continue
			}
			rs = append(rs, p.model.New(r.Attributes()))
		}
		if spec.Unique && len(rs) > 1 {
			rs = rs[:1]
		}
		out[v] = rs
	}
	return out, nil
}

// uniqValues dedupes by key token so 7 and "7" cannot double-query the same
// index entry.
func uniqValues(in []any) []any {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, v := range in {
		tok := keys.ValueToken(v)
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, v)
	}
	return out
}
