package dayassign

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
)

func TestDynamicByDay_RespectsCapacityAndWindows(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := config.Default()

	for trial := 0; trial < 50; trial++ {
		instance, patients := buildSurgeonInstance(rng, 5, 6)
		result, err := DynamicByDay{}.Assign(instance, 0, patients, Locks{}, rng, cfg)
		if err != nil {
			continue // CapacityUnreachable/AllAttemptsFailed are legitimate outcomes on hard draws
		}

		for d, lst := range result.Days {
			sum := 0
			for _, idx := range lst {
				p := instance.Patients[idx]
				assert.LessOrEqual(t, p.ReleaseDay, d, "trial %d: patient before release day", trial)
				if p.Mandatory {
					assert.GreaterOrEqual(t, p.DueDay, d, "trial %d: mandatory patient after due day", trial)
				}
				sum += p.SurgeryDuration
			}
			assert.LessOrEqual(t, sum, instance.Surgeons[0].MaxSurgeryTime[d], "trial %d day %d over capacity", trial, d)
		}

		for _, idx := range result.Unassigned {
			assert.False(t, instance.Patients[idx].Mandatory, "trial %d: mandatory patient left unassigned", trial)
		}
	}
}

func TestDynamicByDay_BumpsOverflowForward(t *testing.T) {
	instance := &model.Instance{
		Days: 2,
		Patients: []model.Patient{
			{ID: "p1", ReleaseDay: 0, DueDay: model.UnboundedDueDay, SurgeryDuration: 25, SurgeonID: "s1"},
			{ID: "p2", ReleaseDay: 0, DueDay: model.UnboundedDueDay, SurgeryDuration: 25, SurgeonID: "s1"},
		},
		Surgeons: []model.Surgeon{{ID: "s1", MaxSurgeryTime: []int{30, 30}}},
	}

	rng := rand.New(rand.NewSource(1))
	result, err := DynamicByDay{}.Assign(instance, 0, []int{0, 1}, Locks{}, rng, config.Default())
	require.NoError(t, err)

	sum := 0
	for _, idx := range result.Days[0] {
		sum += instance.Patients[idx].SurgeryDuration
	}
	assert.LessOrEqual(t, sum, instance.Surgeons[0].MaxSurgeryTime[0])
}
