package value

import (
	"fmt"
	"math/rand"
	"testing"

	"scam/internal/proptest"
)

// TestRandomizedInvariants drives the collector's bind/lookup/sequence-edit
// /copy/collect surface through randomized trials, per the property-based
// coverage spec.md §8 calls for. Each Case owns a fresh Collector so no
// state crosses trials or cases.
func TestRandomizedInvariants(t *testing.T) {
	results := proptest.RunAll([]proptest.Case{
		{Name: "dict-bind-lookup-roundtrip", Trials: 200, Run: dictBindLookupRoundtrip},
		{Name: "sequence-append-length", Trials: 200, Run: sequenceAppendLength},
		{Name: "sequence-insert-delete-inverse", Trials: 200, Run: sequenceInsertDeleteInverse},
		{Name: "copy-is-independent", Trials: 200, Run: copyIsIndependent},
		{Name: "collect-keeps-only-roots", Trials: 200, Run: collectKeepsOnlyRoots},
	}, 42)

	for _, r := range results {
		if !r.Passed() {
			t.Errorf("%s: %v", r.Name, r.Failure)
		}
	}
}

func dictBindLookupRoundtrip(rng *rand.Rand) error {
	c := NewCollector(4096)
	d := NewDict(c)
	n := 1 + rng.Intn(20)
	want := make(map[int64]int64, n)
	for i := 0; i < n; i++ {
		k := rng.Int63n(1000)
		v := rng.Int63()
		Bind(c, d, NewInt(c, k), NewInt(c, v))
		want[k] = v
	}
	for k, v := range want {
		got := Lookup(c, d, NewInt(c, k))
		if got.Tag() == TagErr {
			return fmt.Errorf("lookup(%d) returned %s, want %d", k, Sprint(got), v)
		}
		if AsInt(got) != v {
			return fmt.Errorf("lookup(%d) = %d, want %d", k, AsInt(got), v)
		}
	}
	return nil
}

func sequenceAppendLength(rng *rand.Rand) error {
	c := NewCollector(4096)
	seq := NewList(c)
	n := rng.Intn(30)
	for i := 0; i < n; i++ {
		Append(c, seq, NewInt(c, int64(i)))
	}
	if SeqLen(seq) != n {
		return fmt.Errorf("SeqLen = %d, want %d after %d appends", SeqLen(seq), n, n)
	}
	for i := 0; i < n; i++ {
		if AsInt(SeqGet(c, seq, i)) != int64(i) {
			return fmt.Errorf("element %d = %d, want %d", i, AsInt(SeqGet(c, seq, i)), i)
		}
	}
	return nil
}

func sequenceInsertDeleteInverse(rng *rand.Rand) error {
	c := NewCollector(4096)
	seq := NewList(c)
	n := 1 + rng.Intn(20)
	for i := 0; i < n; i++ {
		Append(c, seq, NewInt(c, int64(i)))
	}
	idx := rng.Intn(n)
	marker := NewInt(c, -1)
	Insert(c, seq, idx, marker)
	if SeqLen(seq) != n+1 {
		return fmt.Errorf("SeqLen after insert = %d, want %d", SeqLen(seq), n+1)
	}
	if AsInt(SeqGet(c, seq, idx)) != -1 {
		return fmt.Errorf("element at insert index = %d, want -1", AsInt(SeqGet(c, seq, idx)))
	}
	Delete(c, seq, idx)
	if SeqLen(seq) != n {
		return fmt.Errorf("SeqLen after delete = %d, want %d", SeqLen(seq), n)
	}
	for i := 0; i < n; i++ {
		if AsInt(SeqGet(c, seq, i)) != int64(i) {
			return fmt.Errorf("post-delete element %d = %d, want %d", i, AsInt(SeqGet(c, seq, i)), i)
		}
	}
	return nil
}

func copyIsIndependent(rng *rand.Rand) error {
	c := NewCollector(4096)
	orig := NewList(c)
	n := rng.Intn(10)
	for i := 0; i < n; i++ {
		Append(c, orig, NewInt(c, int64(i)))
	}
	cp := c.Copy(orig)
	if n > 0 {
		replaceAt(c, cp, 0, NewInt(c, 999))
		if SeqLen(orig) > 0 && AsInt(SeqGet(c, orig, 0)) == 999 {
			return fmt.Errorf("mutating the copy changed the original at index 0")
		}
	}
	if SeqLen(cp) != SeqLen(orig) {
		return fmt.Errorf("copy length %d != original length %d", SeqLen(cp), SeqLen(orig))
	}
	return nil
}

// collectKeepsOnlyRoots builds a random chain of rooted and unrooted
// objects, forces a collection, and checks that every still-rooted value
// survives while nothing keeps the collector growing without bound.
func collectKeepsOnlyRoots(rng *rand.Rand) error {
	c := NewCollector(4096)
	root := NewList(c)
	n := rng.Intn(15)
	for i := 0; i < n; i++ {
		// Orphaned garbage: allocated as a root (every New does), then
		// immediately unrooted without ever being stored anywhere reachable.
		garbage := NewInt(c, int64(i))
		c.UnsetRoot(garbage)
	}
	before := c.LiveCount()
	c.Collect()
	after := c.LiveCount()
	if after > before {
		return fmt.Errorf("LiveCount grew from %d to %d after Collect", before, after)
	}
	// Only the root list and the permanent Null singleton should survive;
	// every unrooted garbage Int must have been reclaimed.
	if after != 2 {
		return fmt.Errorf("LiveCount after Collect = %d, want 2 (root list + Null)", after)
	}
	if !root.IsRoot() {
		return fmt.Errorf("root list lost its root flag unexpectedly")
	}
	return nil
}
