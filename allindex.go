package pantry

import (
	"context"
	"math"
	"time"

	"github.com/unkn0wn-root/pantry/backend"
)

// allIndex is the model's scored membership set: member = record id,
// score = expiry epoch seconds. It bounds which ids count as "currently
// cached" for bulk retrieval. Staleness never breaks correctness - readers
// filter by score, and Prune only caps growth.
type allIndex struct {
	backend backend.Backend
	key     string
	ttl     time.Duration
}

// add registers ids with score now+ttl. Re-adding an id refreshes its score.
func (a *allIndex) add(ctx context.Context, ids []string, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	score := float64(now.Add(a.ttl).Unix())
	members := make(map[string]float64, len(ids))
	for _, id := range ids {
		members[id] = score
	}
	return a.backend.ZAdd(ctx, a.key, members)
}

// current returns the not-yet-expired member ids (score >= now). Expired
// members are skipped, not removed.
func (a *allIndex) current(ctx context.Context, now time.Time) ([]string, error) {
	return a.backend.ZRangeByScore(ctx, a.key, float64(now.Unix()), math.Inf(1))
}

// prune removes members scored strictly below now. Idempotent and safe
// under concurrent reads.
func (a *allIndex) prune(ctx context.Context, now time.Time) (int64, error) {
	return a.backend.ZRemRangeByScore(ctx, a.key, math.Inf(-1), float64(now.Unix()))
}
