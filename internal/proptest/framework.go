// Package proptest is a small property-based test harness, grounded on the
// shape of the teacher's internal/testing package (framework.go's
// TestSuite/TestCase/TestRunner triple) but narrowed to randomized
// invariant checks over the value model instead of script-level test
// discovery: a Case names a property and a function that runs one
// randomized trial against a fresh fixture, and RunAll fans independent
// Cases out concurrently with golang.org/x/sync/errgroup the way the
// teacher's own tooling reaches for errgroup to parallelize independent
// work, never used here to share a single value.Collector across
// goroutines (spec.md's single-threaded-mutator non-goal stays intact:
// each Case owns one Collector end to end within its own goroutine).
package proptest

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Case is one property under test: Run is handed a seeded RNG and should
// exercise some randomized sequence of operations, returning a descriptive
// error the first time an invariant is violated.
type Case struct {
	Name   string
	Trials int // defaults to 100 when <= 0
	Run    func(rng *rand.Rand) error
}

// Result records one Case's outcome across all of its trials.
type Result struct {
	Name    string
	Trial   int
	Failure error
}

// Passed reports whether every trial of the Case succeeded.
func (r Result) Passed() bool { return r.Failure == nil }

// RunAll runs every Case, stopping each at its first failing trial, and
// returns one Result per Case in the same order they were given.
func RunAll(cases []Case, seed int64) []Result {
	results := make([]Result, len(cases))
	var g errgroup.Group
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			results[i] = runCase(c, seed+int64(i))
			return nil
		})
	}
	_ = g.Wait() // case goroutines never return an error; failures live in results
	return results
}

func runCase(c Case, seed int64) Result {
	trials := c.Trials
	if trials <= 0 {
		trials = 100
	}
	rng := rand.New(rand.NewSource(seed))
	for t := 0; t < trials; t++ {
		if err := c.Run(rng); err != nil {
			return Result{Name: c.Name, Trial: t, Failure: fmt.Errorf("trial %d: %w", t, err)}
		}
	}
	return Result{Name: c.Name, Trial: trials}
}
