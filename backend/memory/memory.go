// Package memory implements the pantry backend with in-process maps. It is
// the development/test backend; production deployments should use
// backend/redis.
package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/unkn0wn-root/pantry/backend"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type Memory struct {
	mu   sync.Mutex
	kv   map[string]entry
	sets map[string]map[string]struct{}
	zs   map[string]map[string]float64
}

var _ backend.Backend = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		kv:   make(map[string]entry),
		sets: make(map[string]map[string]struct{}),
		zs:   make(map[string]map[string]float64),
	}
}

func (b *Memory) MGet(_ context.Context, keys []string) (map[string][]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		e, ok := b.kv[k]
		if !ok {
			continue
		}
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(b.kv, k)
			continue
		}
		out[k] = e.v
	}
	return out, nil
}

func (b *Memory) MSet(_ context.Context, items map[string][]byte, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	for k, v := range items {
		b.kv[k] = entry{v: v, exp: exp}
	}
	return nil
}

func (b *Memory) Del(_ context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.kv, k)
		delete(b.sets, k)
		delete(b.zs, k)
	}
	return nil
}

func (b *Memory) SAdd(_ context.Context, members map[string][]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, ms := range members {
		if len(ms) == 0 {
			continue
		}
		s, ok := b.sets[k]
		if !ok {
			s = make(map[string]struct{}, len(ms))
			b.sets[k] = s
		}
		for _, m := range ms {
			s[m] = struct{}{}
		}
	}
	return nil
}

func (b *Memory) SMembers(_ context.Context, keys []string) (map[string][]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]string, len(keys))
	for _, k := range keys {
		s := b.sets[k]
		ms := make([]string, 0, len(s))
		for m := range s {
			ms = append(ms, m)
		}
		out[k] = ms
	}
	return out, nil
}

func (b *Memory) SRem(_ context.Context, key string, members []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sets[key]
	if !ok {
		return nil
	}
	for _, m := range members {
		delete(s, m)
	}
	// mirror redis: an emptied set stops existing
	if len(s) == 0 {
		delete(b.sets, key)
	}
	return nil
}

func (b *Memory) Exists(_ context.Context, keys []string) (map[string]bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		if e, ok := b.kv[k]; ok {
			if !e.exp.IsZero() && now.After(e.exp) {
				delete(b.kv, k)
			} else {
				out[k] = true
				continue
			}
		}
		if _, ok := b.sets[k]; ok {
			out[k] = true
			continue
		}
		if _, ok := b.zs[k]; ok {
			out[k] = true
			continue
		}
		out[k] = false
	}
	return out, nil
}

func (b *Memory) ZAdd(_ context.Context, key string, members map[string]float64) error {
	if len(members) == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	z, ok := b.zs[key]
	if !ok {
		z = make(map[string]float64, len(members))
		b.zs[key] = z
	}
	for m, score := range members {
		z[m] = score
	}
	return nil
}

func (b *Memory) ZRangeByScore(_ context.Context, key string, min, max float64) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for m, score := range b.zs[key] {
		if score >= min && (math.IsInf(max, 1) || score <= max) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (b *Memory) ZRemRangeByScore(_ context.Context, key string, min, max float64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	z, ok := b.zs[key]
	if !ok {
		return 0, nil
	}
	var n int64
	for m, score := range z {
		if score >= min && score < max {
			delete(z, m)
			n++
		}
	}
	if len(z) == 0 {
		delete(b.zs, key)
	}
	return n, nil
}

func (b *Memory) Close(context.Context) error { return nil }
