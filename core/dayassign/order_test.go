package dayassign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smuggr/arrango-ihtc/common/model"
)

func TestSortDay_OrdersByDueDayThenDuration(t *testing.T) {
	patients := []model.Patient{
		{DueDay: 2, SurgeryDuration: 10},
		{DueDay: 1, SurgeryDuration: 5},
		{DueDay: 2, SurgeryDuration: 30},
		{DueDay: model.UnboundedDueDay, SurgeryDuration: 999},
	}
	lst := []int{0, 1, 2, 3}
	sortDay(patients, lst)
	assert.Equal(t, []int{1, 2, 0, 3}, lst)
}

func TestSortDay_StableOnTies(t *testing.T) {
	patients := []model.Patient{
		{DueDay: 1, SurgeryDuration: 10},
		{DueDay: 1, SurgeryDuration: 10},
	}
	lst := []int{0, 1}
	sortDay(patients, lst)
	assert.Equal(t, []int{0, 1}, lst)
}
