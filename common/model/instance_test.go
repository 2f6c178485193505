package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInstance() Instance {
	return Instance{
		Days:    3,
		Weights: Weights{},
		Patients: []Patient{
			{ID: "p1", Mandatory: true, ReleaseDay: 0, DueDay: 2, SurgeryDuration: 30, SurgeonID: "s1"},
			{ID: "p2", Mandatory: false, ReleaseDay: 1, SurgeryDuration: 20, SurgeonID: "s1"},
		},
		Surgeons: []Surgeon{
			{ID: "s1", MaxSurgeryTime: []int{60, 60, 60}},
		},
		Theaters: []Theater{
			{ID: "t1", Availability: []int{60, 60, 60}},
		},
	}
}

func TestValidate_AcceptsWellFormedInstance(t *testing.T) {
	in := sampleInstance()
	require.NoError(t, in.Validate())

	idx, ok := in.SurgeonIndex("s1")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestValidate_SetsUnboundedDueDayForOptionalPatients(t *testing.T) {
	in := sampleInstance()
	require.NoError(t, in.Validate())
	assert.Equal(t, UnboundedDueDay, in.Patients[1].DueDay)
}

func TestValidate_RejectsUnknownSurgeon(t *testing.T) {
	in := sampleInstance()
	in.Patients[0].SurgeonID = "ghost"
	assert.Error(t, in.Validate())
}

func TestValidate_RejectsDuplicateSurgeonIDs(t *testing.T) {
	in := sampleInstance()
	in.Surgeons = append(in.Surgeons, Surgeon{ID: "s1", MaxSurgeryTime: []int{60, 60, 60}})
	assert.Error(t, in.Validate())
}

func TestValidate_RejectsMandatoryDueDayOutOfRange(t *testing.T) {
	in := sampleInstance()
	in.Patients[0].DueDay = 99
	assert.Error(t, in.Validate())
}

func TestPatient_FinalDay(t *testing.T) {
	mandatory := Patient{Mandatory: true, DueDay: 2}
	optional := Patient{Mandatory: false}
	assert.Equal(t, 2, mandatory.FinalDay(5))
	assert.Equal(t, 5, optional.FinalDay(5))
}

func TestInstance_PatientsOf(t *testing.T) {
	in := sampleInstance()
	require.NoError(t, in.Validate())
	idx, _ := in.SurgeonIndex("s1")
	assert.Equal(t, []int{0, 1}, in.PatientsOf(idx))
}
