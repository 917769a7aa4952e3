package pantry

import (
	"context"

	"github.com/unkn0wn-root/pantry/backend"
	"github.com/unkn0wn-root/pantry/internal/keys"
)

// noneMember materializes "indexed, no matches" in the backend. Set stores
// delete empty sets, so an index entry with zero ids would otherwise be
// indistinguishable from one that was never populated. Reads filter it out.
const noneMember = "__pantry_none__"

// indexSet maintains the model's secondary indices: attribute-value-keyed
// sets of record ids.
type indexSet struct {
	backend backend.Backend
	keys    keys.Codec
	specs   []IndexSpec
	log     Logger
	hooks   Hooks
}

func (ix *indexSet) spec(attribute string) (IndexSpec, bool) {
	for _, s := range ix.specs {
		if s.Attribute == attribute {
			return s, true
		}
	}
	return IndexSpec{}, false
}

// multiGet reads the index entries for the given values. A value whose key
// exists is a hit, even when empty; a value whose key is absent is a genuine
// miss that must consult the backing store. The explicit existence check is
// what tells the two apart - a plain set read returns an empty list for both.
func (ix *indexSet) multiGet(ctx context.Context, spec IndexSpec, values []any) (hits map[any][]string, missing []any, err error) {
	hits = make(map[any][]string, len(values))
	if len(values) == 0 {
		return hits, nil, nil
	}

	ks := make([]string, len(values))
	for i, v := range values {
		ks[i] = ix.keys.Index(spec.Attribute, v)
	}
	exists, err := ix.backend.Exists(ctx, ks)
	if err != nil {
		return nil, nil, err
	}
	members, err := ix.backend.SMembers(ctx, ks)
	if err != nil {
		return nil, nil, err
	}

	for i, v := range values {
		if !exists[ks[i]] {
			missing = append(missing, v)
			continue
		}
		ids := members[ks[i]][:0:0]
		for _, m := range members[ks[i]] {
			if m != noneMember {
				ids = append(ids, m)
			}
		}
		hits[v] = ids
	}
	return hits, missing, nil
}

// populate writes index entries for every value in byValue, including values
// with no matching ids, so that later reads see "indexed, empty" instead of
// a miss.
func (ix *indexSet) populate(ctx context.Context, spec IndexSpec, byValue map[any][]string) error {
	if len(byValue) == 0 {
		return nil
	}
	adds := make(map[string][]string, len(byValue))
	for v, ids := range byValue {
		k := ix.keys.Index(spec.Attribute, v)
		if len(ids) == 0 {
			adds[k] = []string{noneMember}
			continue
		}
		adds[k] = ids
	}
	if err := ix.backend.SAdd(ctx, adds); err != nil {
		return err
	}
	ix.hooks.IndexFilled(spec.Attribute, len(byValue))
	return nil
}

// invalidate reconciles one index against reported changes.
//
// Filtered specs clear the entries at every value a record occupies now or
// occupied before, for every record reported - whether the record still
// belongs to the index cannot be derived from a value diff.
//
// Plain specs only react when the watched attribute actually changed,
// clearing both the old and the new value's entries. Destroyed records are
// not diffed: a deleted-but-still-indexed id resolves to no record on read,
// so their membership is removed directly (whole key for unique entries, the
// single id for multi-valued ones).
func (ix *indexSet) invalidate(ctx context.Context, spec IndexSpec, changes []Change) error {
	var del []string
	srem := make(map[string][]string)

	for _, ch := range changes {
		rec := ch.Record
		current := rec.Attributes()[spec.Attribute]
		currentKey := ix.keys.Index(spec.Attribute, current)

		if spec.Filter != nil {
			del = append(del, currentKey)
			if vc, ok := ch.Diff[spec.Attribute]; ok {
				del = append(del, ix.keys.Index(spec.Attribute, vc.Old), ix.keys.Index(spec.Attribute, vc.New))
			}
			continue
		}

		if rec.Destroyed() {
			if spec.Unique {
				del = append(del, currentKey)
			} else {
				srem[currentKey] = append(srem[currentKey], rec.ID())
			}
			continue
		}

		if ch.Diff == nil {
			// bare-id invalidation: no diff to consult, assume the
			// membership at the current value moved
			del = append(del, currentKey)
			continue
		}
		vc, ok := ch.Diff[spec.Attribute]
		if !ok || keys.ValueToken(vc.Old) == keys.ValueToken(vc.New) {
			continue
		}
		del = append(del,
			ix.keys.Index(spec.Attribute, vc.Old),
			ix.keys.Index(spec.Attribute, vc.New))
	}

	if len(del) > 0 {
		if err := ix.backend.Del(ctx, uniq(del)); err != nil {
			return err
		}
	}
	for k, ids := range srem {
		if err := ix.backend.SRem(ctx, k, ids); err != nil {
			return err
		}
	}
	return nil
}
