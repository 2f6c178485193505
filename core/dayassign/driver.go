package dayassign

import (
	"math/rand"
	"sync"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
)

// outcome is one surgeon's day-assignment result (or error), collected by
// the driver's results channel.
type outcome struct {
	surgeonIdx int
	result     Result
	err        error
}

// Driver runs a Strategy across every surgeon in an instance, bounded by
// cfg.Workers concurrent goroutines. Grounded on the Rust original's
// assign_surgery_days: a mutex-guarded cursor over surgeon indices plus a
// channel collecting exactly one message per surgeon, translated from
// thread::scope/Mutex<usize>/mpsc::channel into goroutines/sync.Mutex/chan.
type Driver struct {
	Strategy Strategy
}

// Run assigns days for every surgeon in instance, returning one Result per
// surgeon (indexed by surgeon index) or the first error encountered.
// locksFor supplies the Locks and eligible-patient set for a surgeon; the
// orchestrator's top-level solve passes a locksFor that returns the full
// patient set with LockedDay 0. (Bump repairs do not go through the
// Driver: they call the Strategy directly for the one surgeon involved.)
func (d Driver) Run(instance *model.Instance, cfg config.SolverConfig, locksFor func(surgeonIdx int) (patients []int, locks Locks)) ([]Result, error) {
	n := len(instance.Surgeons)
	results := make([]Result, n)

	var cursor int
	var mu sync.Mutex
	out := make(chan outcome, n)

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if cursor >= n {
					mu.Unlock()
					return
				}
				surgeonIdx := cursor
				cursor++
				mu.Unlock()

				// Seeded per surgeon, not per worker: which goroutine picks up a
				// given surgeon is scheduler-dependent, but the rng it solves
				// with must not be, or results stop being reproducible under a
				// fixed cfg.Seed.
				rng := rand.New(rand.NewSource(cfg.Seed + int64(surgeonIdx) + 1))
				patients, locks := locksFor(surgeonIdx)
				result, err := d.Strategy.Assign(instance, surgeonIdx, patients, locks, rng, cfg)
				out <- outcome{surgeonIdx: surgeonIdx, result: result, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var firstErr error
	for o := range out {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		results[o.surgeonIdx] = o.result
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
