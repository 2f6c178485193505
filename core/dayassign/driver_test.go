package dayassign

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
)

// echoStrategy records which surgeon it was invoked for and returns an empty
// result, used to check the driver dispatches exactly once per surgeon.
type echoStrategy struct {
	mu    sync.Mutex
	calls map[int]int
}

func (e *echoStrategy) Assign(instance *model.Instance, surgeonIdx int, patients []int, locks Locks, rng *rand.Rand, cfg config.SolverConfig) (Result, error) {
	e.mu.Lock()
	e.calls[surgeonIdx]++
	e.mu.Unlock()
	return Result{Days: make([][]int, instance.Days)}, nil
}

func TestDriver_Run_CoversEverySurgeonExactlyOnce(t *testing.T) {
	instance := &model.Instance{
		Days: 1,
		Surgeons: []model.Surgeon{
			{ID: "s1", MaxSurgeryTime: []int{10}},
			{ID: "s2", MaxSurgeryTime: []int{10}},
			{ID: "s3", MaxSurgeryTime: []int{10}},
		},
	}
	cfg := config.Default()
	cfg.Workers = 2

	strat := &echoStrategy{calls: map[int]int{}}
	driver := Driver{Strategy: strat}
	results, err := driver.Run(instance, cfg, func(s int) ([]int, Locks) { return nil, Locks{} })
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1}, strat.calls)
}

type failingStrategy struct{ calls int }

func (f *failingStrategy) Assign(instance *model.Instance, surgeonIdx int, patients []int, locks Locks, rng *rand.Rand, cfg config.SolverConfig) (Result, error) {
	f.calls++
	return Result{}, assert.AnError
}

func TestDriver_Run_PropagatesFirstError(t *testing.T) {
	instance := &model.Instance{
		Days:     1,
		Surgeons: []model.Surgeon{{ID: "s1", MaxSurgeryTime: []int{10}}},
	}
	driver := Driver{Strategy: &failingStrategy{}}
	_, err := driver.Run(instance, config.Default(), func(s int) ([]int, Locks) { return nil, Locks{} })
	assert.Error(t, err)
}
