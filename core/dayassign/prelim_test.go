package dayassign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smuggr/arrango-ihtc/common/model"
)

func TestPrelimBuckets_UsesReleaseDayAndLocks(t *testing.T) {
	instance := &model.Instance{
		Days: 3,
		Patients: []model.Patient{
			{ReleaseDay: 0, DueDay: 2, Mandatory: true, SurgeryDuration: 5},
			{ReleaseDay: 2, DueDay: model.UnboundedDueDay, SurgeryDuration: 5},
		},
	}
	buckets := prelimBuckets(instance, []int{0, 1}, Locks{LockedDay: 1})
	assert.Equal(t, []int{0}, buckets[1])
	assert.Equal(t, []int{1}, buckets[2])
	assert.Empty(t, buckets[0])
}

func TestPrelimBuckets_SkipsBarredDays(t *testing.T) {
	instance := &model.Instance{
		Days: 3,
		Patients: []model.Patient{
			{ReleaseDay: 0, DueDay: model.UnboundedDueDay, SurgeryDuration: 5},
		},
	}
	locks := Locks{Barred: map[int]map[int]bool{0: {0: true}}}
	buckets := prelimBuckets(instance, []int{0}, locks)
	assert.Equal(t, []int{0}, buckets[1])
}
