package pantry

import (
	"context"
	"time"

	"github.com/unkn0wn-root/pantry/backend"
	c "github.com/unkn0wn-root/pantry/codec"
	"github.com/unkn0wn-root/pantry/internal/keys"
	"github.com/unkn0wn-root/pantry/internal/wire"
)

// primaryCache is the id-keyed snapshot store. One multiGet/multiSet is one
// pipelined backend batch.
type primaryCache struct {
	backend   backend.Backend
	codec     c.Codec[map[string]any]
	keys      keys.Codec
	ttl       time.Duration
	forceMiss bool
	log       Logger
	hooks     Hooks
}

// multiGet returns decoded snapshots by id. Absent ids are absent entries.
// Entries that fail frame or codec validation are deleted (self-heal) and
// reported as misses. Under force-miss everything misses without touching
// the backend.
func (p *primaryCache) multiGet(ctx context.Context, ids []string) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(ids))
	if p.forceMiss || len(ids) == 0 {
		return out, nil
	}

	ks := make([]string, len(ids))
	for i, id := range ids {
		ks[i] = p.keys.Primary(id)
	}
	raw, err := p.backend.MGet(ctx, ks)
	if err != nil {
		return nil, err
	}

	var heal []string
	for i, id := range ids {
		b, ok := raw[ks[i]]
		if !ok {
			continue
		}
		payload, err := wire.Decode(b)
		if err != nil {
			heal = append(heal, ks[i])
			p.hooks.SelfHeal(ks[i], "corrupt")
			continue
		}
		attrs, err := p.codec.Decode(payload)
		if err != nil {
			heal = append(heal, ks[i])
			p.hooks.SelfHeal(ks[i], "value_decode")
			continue
		}
		out[id] = attrs
	}
	if len(heal) > 0 {
		if err := p.backend.Del(ctx, heal); err != nil {
			p.log.Warn("self-heal delete failed", Fields{"keys": len(heal), "err": err})
		}
	}
	return out, nil
}

// multiSet writes record snapshots with the model TTL. The result is never
// re-parsed; callers that need values materialize from the records they
// already hold.
func (p *primaryCache) multiSet(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	items := make(map[string][]byte, len(recs))
	for _, r := range recs {
		payload, err := p.codec.Encode(r.Attributes())
		if err != nil {
			return err
		}
		items[p.keys.Primary(r.ID())] = wire.Encode(payload)
	}
	return p.backend.MSet(ctx, items, p.ttl)
}

func (p *primaryCache) del(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	ks := make([]string, len(ids))
	for i, id := range ids {
		ks[i] = p.keys.Primary(id)
	}
	return p.backend.Del(ctx, ks)
}
