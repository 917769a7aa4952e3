package memory

import (
	"context"
	"math"
	"sort"
	"testing"
	"time"
)

func TestKVAndTTL(t *testing.T) {
	ctx := context.Background()
	b := New()

	if err := b.MSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}, 0); err != nil {
		t.Fatalf("MSet: %v", err)
	}

	got, err := b.MGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("MGet: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Fatalf("MGet: %v", got)
	}
	if _, ok := got["missing"]; ok {
		t.Fatalf("missing key must be absent, not nil")
	}

	// expired entries miss and are dropped lazily
	if err := b.MSet(ctx, map[string][]byte{"ttl": []byte("x")}, time.Nanosecond); err != nil {
		t.Fatalf("MSet ttl: %v", err)
	}
	time.Sleep(time.Millisecond)
	got, _ = b.MGet(ctx, []string{"ttl"})
	if len(got) != 0 {
		t.Fatalf("expired key should miss, got %v", got)
	}
	ex, _ := b.Exists(ctx, []string{"ttl"})
	if ex["ttl"] {
		t.Fatalf("expired key should not exist")
	}

	if err := b.Del(ctx, []string{"a"}); err != nil {
		t.Fatalf("Del: %v", err)
	}
	got, _ = b.MGet(ctx, []string{"a"})
	if len(got) != 0 {
		t.Fatalf("deleted key should miss")
	}
}

func TestSets(t *testing.T) {
	ctx := context.Background()
	b := New()

	if err := b.SAdd(ctx, map[string][]string{
		"s1": {"a", "b", "a"},
		"s2": {"x"},
	}); err != nil {
		t.Fatalf("SAdd: %v", err)
	}

	ms, err := b.SMembers(ctx, []string{"s1", "s2", "nope"})
	if err != nil {
		t.Fatalf("SMembers: %v", err)
	}
	sort.Strings(ms["s1"])
	if len(ms["s1"]) != 2 || ms["s1"][0] != "a" || ms["s1"][1] != "b" {
		t.Fatalf("s1 members: %v", ms["s1"])
	}
	if len(ms["nope"]) != 0 {
		t.Fatalf("absent set should read empty, got %v", ms["nope"])
	}

	ex, _ := b.Exists(ctx, []string{"s1", "nope"})
	if !ex["s1"] || ex["nope"] {
		t.Fatalf("Exists: %v", ex)
	}

	// removing the last member removes the key, as redis does
	if err := b.SRem(ctx, "s2", []string{"x"}); err != nil {
		t.Fatalf("SRem: %v", err)
	}
	ex, _ = b.Exists(ctx, []string{"s2"})
	if ex["s2"] {
		t.Fatalf("emptied set should stop existing")
	}
}

func TestSortedSets(t *testing.T) {
	ctx := context.Background()
	b := New()

	if err := b.ZAdd(ctx, "z", map[string]float64{
		"low": 1, "mid": 5, "high": 9,
	}); err != nil {
		t.Fatalf("ZAdd: %v", err)
	}
	// re-add updates the score
	if err := b.ZAdd(ctx, "z", map[string]float64{"low": 6}); err != nil {
		t.Fatalf("ZAdd update: %v", err)
	}

	got, err := b.ZRangeByScore(ctx, "z", 5, math.Inf(1))
	if err != nil {
		t.Fatalf("ZRangeByScore: %v", err)
	}
	sort.Strings(got)
	if len(got) != 3 {
		t.Fatalf("expected low/mid/high >= 5, got %v", got)
	}

	// max is exclusive for removal
	n, err := b.ZRemRangeByScore(ctx, "z", math.Inf(-1), 6)
	if err != nil {
		t.Fatalf("ZRemRangeByScore: %v", err)
	}
	if n != 1 { // only mid(5); low moved to 6
		t.Fatalf("expected 1 removed, got %d", n)
	}
	got, _ = b.ZRangeByScore(ctx, "z", math.Inf(-1), math.Inf(1))
	sort.Strings(got)
	if len(got) != 2 || got[0] != "high" || got[1] != "low" {
		t.Fatalf("survivors: %v", got)
	}
}

func TestDelDropsEveryShape(t *testing.T) {
	ctx := context.Background()
	b := New()

	_ = b.MSet(ctx, map[string][]byte{"k": []byte("v")}, 0)
	_ = b.SAdd(ctx, map[string][]string{"s": {"m"}})
	_ = b.ZAdd(ctx, "z", map[string]float64{"m": 1})

	if err := b.Del(ctx, []string{"k", "s", "z"}); err != nil {
		t.Fatalf("Del: %v", err)
	}
	ex, _ := b.Exists(ctx, []string{"k", "s", "z"})
	for k, v := range ex {
		if v {
			t.Fatalf("key %q should be gone", k)
		}
	}
}
