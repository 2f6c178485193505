package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
)

func smallInstance() *model.Instance {
	in := &model.Instance{
		Days: 2,
		Weights: model.Weights{
			OpenOperatingTheater: 1,
			SurgeonTransfer:      2,
		},
		Patients: []model.Patient{
			{ID: "p1", Mandatory: true, ReleaseDay: 0, DueDay: 1, SurgeryDuration: 20, SurgeonID: "s1"},
			{ID: "p2", Mandatory: false, ReleaseDay: 0, SurgeryDuration: 15, SurgeonID: "s1"},
			{ID: "p3", Mandatory: true, ReleaseDay: 0, DueDay: 1, SurgeryDuration: 25, SurgeonID: "s2"},
		},
		Surgeons: []model.Surgeon{
			{ID: "s1", MaxSurgeryTime: []int{30, 30}},
			{ID: "s2", MaxSurgeryTime: []int{30, 30}},
		},
		Theaters: []model.Theater{
			{ID: "t1", Availability: []int{40, 40}},
			{ID: "t2", Availability: []int{40, 40}},
		},
	}
	if err := in.Validate(); err != nil {
		panic(err)
	}
	return in
}

func TestSolver_SolveProducesCompleteSchedule(t *testing.T) {
	instance := smallInstance()
	cfg := config.Default()
	cfg.Seed = 1

	solver := New(instance, cfg, nil)
	result, err := solver.Solve()
	require.NoError(t, err)
	require.Len(t, result.Outcomes, len(instance.Patients))

	for i, outcome := range result.Outcomes {
		if instance.Patients[i].Mandatory {
			assert.False(t, outcome.Unscheduled, "mandatory patient %d left unscheduled", i)
		}
	}
}

func TestSolver_DeterministicUnderFixedSeed(t *testing.T) {
	instance := smallInstance()
	cfg := config.Default()
	cfg.Seed = 42

	r1, err := New(instance, cfg, nil).Solve()
	require.NoError(t, err)
	r2, err := New(instance, cfg, nil).Solve()
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
