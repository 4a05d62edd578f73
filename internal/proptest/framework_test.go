package proptest

import (
	"errors"
	"math/rand"
	"testing"
)

func TestRunAllReportsFailure(t *testing.T) {
	results := RunAll([]Case{
		{Name: "always-fails", Trials: 5, Run: func(rng *rand.Rand) error {
			return errors.New("boom")
		}},
	}, 1)
	if len(results) != 1 || results[0].Passed() {
		t.Fatalf("expected a failing result, got %+v", results)
	}
}

func TestRunAllAllPass(t *testing.T) {
	results := RunAll([]Case{
		{Name: "always-passes", Trials: 10, Run: func(rng *rand.Rand) error { return nil }},
	}, 1)
	if len(results) != 1 || !results[0].Passed() {
		t.Fatalf("expected a passing result, got %+v", results)
	}
}

func TestRunAllRunsCasesIndependently(t *testing.T) {
	results := RunAll([]Case{
		{Name: "pass", Run: func(rng *rand.Rand) error { return nil }},
		{Name: "fail", Run: func(rng *rand.Rand) error { return errors.New("nope") }},
	}, 7)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}
	if !byName["pass"].Passed() {
		t.Fatal("pass case should have passed")
	}
	if byName["fail"].Passed() {
		t.Fatal("fail case should have failed")
	}
}
