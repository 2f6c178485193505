package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smuggr/arrango-ihtc/common/model"
)

func sampleInstance() *model.Instance {
	in := &model.Instance{
		Days: 2,
		Patients: []model.Patient{
			{ID: "p1", Mandatory: true, ReleaseDay: 0, DueDay: 1, SurgeryDuration: 10, SurgeonID: "s1"},
			{ID: "p2", Mandatory: false, ReleaseDay: 0, SurgeryDuration: 20, SurgeonID: "s1"},
		},
		Surgeons: []model.Surgeon{{ID: "s1", MaxSurgeryTime: []int{30, 30}}},
		Theaters: []model.Theater{{ID: "t1", Availability: []int{30, 30}}},
	}
	_ = in.Validate()
	return in
}

func TestAssignment_RoundTripAndFinalize(t *testing.T) {
	in := sampleInstance()
	a := New(in)

	a.SetSurgeonDayLists(0, [][]int{{0}, {1}}, nil)
	assert.Equal(t, []int{0}, a.PatientsOnDay(0, 0))
	assert.False(t, a.HasTheater(0))

	a.TheaterSet(0, 0)
	assert.True(t, a.HasTheater(0))

	assert.True(t, a.InProgress)
	a.Finalize()
	assert.False(t, a.InProgress)
}

func TestAssignment_Lock_OnlyRaises(t *testing.T) {
	in := sampleInstance()
	a := New(in)
	a.Lock(0, 1)
	a.Lock(0, 0)
	assert.Equal(t, 1, a.LockedDays[0])
}

func TestAssignment_Clone_IsIndependent(t *testing.T) {
	in := sampleInstance()
	a := New(in)
	a.SetSurgeonDayLists(0, [][]int{{0}, {1}}, nil)

	clone := a.Clone()
	clone.DayLists[0][0] = append(clone.DayLists[0][0], 99)

	assert.Equal(t, []int{0}, a.DayLists[0][0])
	assert.Equal(t, []int{0, 99}, clone.DayLists[0][0])
}

func TestCheckInvariants_PassesOnValidAssignment(t *testing.T) {
	in := sampleInstance()
	a := New(in)
	a.SetSurgeonDayLists(0, [][]int{{0}, {1}}, nil)
	assert.NotPanics(t, func() { a.CheckInvariants() })
}

func TestCheckInvariants_PanicsOnDuplicatePatient(t *testing.T) {
	in := sampleInstance()
	a := New(in)
	a.SetSurgeonDayLists(0, [][]int{{0}, {1, 0}}, nil)
	assert.Panics(t, func() { a.CheckInvariants() })
}

func TestCheckInvariants_PanicsOnMandatoryUnassigned(t *testing.T) {
	in := sampleInstance()
	a := New(in)
	a.SetSurgeonDayLists(0, [][]int{{}, {1}}, []int{0})
	assert.Panics(t, func() { a.CheckInvariants() })
}

func TestCheckTheaterCapacity_PanicsOverCapacity(t *testing.T) {
	in := sampleInstance()
	in.Theaters[0].Availability[0] = 5
	a := New(in)
	a.SetSurgeonDayLists(0, [][]int{{0}, {1}}, nil)
	a.TheaterSet(0, 0)
	assert.Panics(t, func() { a.CheckTheaterCapacity(0) })
}

func TestToResult_MarksUnscheduledAndTheater(t *testing.T) {
	in := sampleInstance()
	a := New(in)
	a.SetSurgeonDayLists(0, [][]int{{0}, {}}, []int{1})
	a.TheaterSet(0, 0)

	result := a.ToResult()
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, "t1", result.Outcomes[0].TheaterID)
	assert.True(t, result.Outcomes[1].Unscheduled)
}
