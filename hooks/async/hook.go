// Package asynchook moves hook dispatch off the cache hot path. Events are
// queued to a bounded channel and delivered by worker goroutines; when the
// queue is full, events are dropped rather than blocking a cache operation.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{SelfHealEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/pantry"
)

type Hooks struct {
	inner pantry.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ pantry.Hooks = (*Hooks)(nil)

func New(inner pantry.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) SelfHeal(k, r string) { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) IndexReadThrough(attr string, n int) {
	h.try(func() { h.inner.IndexReadThrough(attr, n) })
}
func (h *Hooks) IndexFilled(attr string, n int) { h.try(func() { h.inner.IndexFilled(attr, n) }) }
func (h *Hooks) Restocked(n int)                { h.try(func() { h.inner.Restocked(n) }) }
func (h *Hooks) Pruned(n int64)                 { h.try(func() { h.inner.Pruned(n) }) }
