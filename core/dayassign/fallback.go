package dayassign

import (
	"math/rand"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
)

// WithFallback tries Primary first and, on any error, retries the same
// surgeon with Fallback — the "LP-relaxation, or DP/backtracking fallback"
// of spec §4.1/§9.
type WithFallback struct {
	Primary  Strategy
	Fallback Strategy
}

func (w WithFallback) Assign(instance *model.Instance, surgeonIdx int, patients []int, locks Locks, rng *rand.Rand, cfg config.SolverConfig) (Result, error) {
	result, err := w.Primary.Assign(instance, surgeonIdx, patients, locks, rng, cfg)
	if err == nil {
		return result, nil
	}
	return w.Fallback.Assign(instance, surgeonIdx, patients, locks, rng, cfg)
}
