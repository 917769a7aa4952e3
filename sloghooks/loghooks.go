// Package sloghooks logs pantry hook events through log/slog, with sampling
// for the high-frequency ones.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/pantry"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery    uint64
	ReadThroughEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr    atomic.Uint64
	readThroughCtr atomic.Uint64
}

var _ pantry.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("pantry.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) IndexReadThrough(attribute string, misses int) {
	if h.l == nil || !sample(h.opts.ReadThroughEvery, &h.readThroughCtr) {
		return
	}
	h.l.Debug("pantry.index_read_through",
		"attribute", attribute,
		"misses", misses)
}

func (h *Hooks) IndexFilled(attribute string, values int) {
	if h.l == nil {
		return
	}
	h.l.Debug("pantry.index_filled",
		"attribute", attribute,
		"values", values)
}

func (h *Hooks) Restocked(count int) {
	if h.l == nil {
		return
	}
	h.l.Info("pantry.restocked", "count", count)
}

func (h *Hooks) Pruned(removed int64) {
	if h.l == nil {
		return
	}
	h.l.Debug("pantry.pruned", "removed", removed)
}
