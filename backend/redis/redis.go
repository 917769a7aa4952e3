// Package redis implements the pantry backend on go-redis. Each Backend
// method issues its commands through a single pipeline, so one logical pantry
// operation costs one round trip regardless of how many keys it touches.
package redis

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/pantry/backend"
)

var ErrNilClient = errors.New("redis backend: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ backend.Backend = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this backend exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (b *Redis) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}
	vals, err := b.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(keys))
	for i, v := range vals {
		switch vv := v.(type) {
		case nil:
			// miss
		case string:
			out[keys[i]] = []byte(vv)
		case []byte:
			out[keys[i]] = vv
		}
	}
	return out, nil
}

func (b *Redis) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	if ttl < 0 {
		ttl = 0
	}
	_, err := b.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for k, v := range items {
			p.Set(ctx, k, v, ttl)
		}
		return nil
	})
	return err
}

func (b *Redis) Del(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.rdb.Del(ctx, keys...).Err()
}

func (b *Redis) SAdd(ctx context.Context, members map[string][]string) error {
	if len(members) == 0 {
		return nil
	}
	_, err := b.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for k, ms := range members {
			if len(ms) == 0 {
				continue
			}
			args := make([]any, len(ms))
			for i, m := range ms {
				args[i] = m
			}
			p.SAdd(ctx, k, args...)
		}
		return nil
	})
	return err
}

func (b *Redis) SMembers(ctx context.Context, keys []string) (map[string][]string, error) {
	out := make(map[string][]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	cmds := make([]*goredis.StringSliceCmd, len(keys))
	_, err := b.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for i, k := range keys {
			cmds[i] = p.SMembers(ctx, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		out[k] = cmds[i].Val()
	}
	return out, nil
}

func (b *Redis) SRem(ctx context.Context, key string, members []string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	return b.rdb.SRem(ctx, key, args...).Err()
}

func (b *Redis) Exists(ctx context.Context, keys []string) (map[string]bool, error) {
	out := make(map[string]bool, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	cmds := make([]*goredis.IntCmd, len(keys))
	_, err := b.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for i, k := range keys {
			cmds[i] = p.Exists(ctx, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		out[k] = cmds[i].Val() > 0
	}
	return out, nil
}

func (b *Redis) ZAdd(ctx context.Context, key string, members map[string]float64) error {
	if len(members) == 0 {
		return nil
	}
	zs := make([]goredis.Z, 0, len(members))
	for m, score := range members {
		zs = append(zs, goredis.Z{Member: m, Score: score})
	}
	return b.rdb.ZAdd(ctx, key, zs...).Err()
}

func (b *Redis) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	return b.rdb.ZRangeByScore(ctx, key, &goredis.ZRangeBy{
		Min: scoreArg(min, false),
		Max: scoreArg(max, false),
	}).Result()
}

func (b *Redis) ZRemRangeByScore(ctx context.Context, key string, min, max float64) (int64, error) {
	// max is exclusive per the backend contract
	return b.rdb.ZRemRangeByScore(ctx, key, scoreArg(min, false), scoreArg(max, true)).Result()
}

func scoreArg(v float64, exclusive bool) string {
	var s string
	switch {
	case math.IsInf(v, 1):
		s = "+inf"
	case math.IsInf(v, -1):
		s = "-inf"
	default:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if exclusive && !math.IsInf(v, 0) {
		return "(" + s
	}
	return s
}

// Close releases the underlying redis client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Redis) Close(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
