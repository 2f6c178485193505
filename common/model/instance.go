// Package model defines the immutable problem description consumed by the
// solver: the set of patients, surgeons, operating theaters, and the
// objective weight vector for one IHTC-2024 instance.
package model

import "math"

// UnboundedDueDay is the sentinel stored in Patient.DueDay for optional
// patients, which have no due date.
const UnboundedDueDay = math.MaxInt32

// Weights is the objective weight vector. All fields are non-negative.
type Weights struct {
	RoomMixedAge          float64 `json:"room_mixed_age"`
	RoomNurseSkill        float64 `json:"room_nurse_skill"`
	ContinuityOfCare      float64 `json:"continuity_of_care"`
	NurseExcessiveWorkload float64 `json:"nurse_excessive_workload"`
	OpenOperatingTheater  float64 `json:"open_operating_theater"`
	SurgeonTransfer       float64 `json:"surgeon_transfer"`
	PatientDelay          float64 `json:"patient_delay"`
	UnscheduledOptional   float64 `json:"unscheduled_optional"`
}

// Patient is one surgery request.
type Patient struct {
	ID               string `json:"id"`
	Mandatory        bool   `json:"mandatory"`
	ReleaseDay       int    `json:"surgery_release_day"`
	DueDay           int    `json:"surgery_due_day,omitempty"`
	SurgeryDuration  int    `json:"surgery_duration"`
	SurgeonID        string `json:"surgeon_id"`
}

// FinalDay returns the last day on which this patient may still be assigned
// under the day-assignment LP: the due day for mandatory patients, or the
// instance's day count D for optional patients (the "bump/unassigned" sink
// index, one past the last real day).
func (p Patient) FinalDay(days int) int {
	if p.Mandatory {
		return p.DueDay
	}
	return days
}

// Surgeon is one operating surgeon with a per-day operating-time budget.
type Surgeon struct {
	ID             string `json:"id"`
	MaxSurgeryTime []int  `json:"max_surgery_time"`
}

// Theater is one operating theater with a per-day availability budget.
type Theater struct {
	ID           string `json:"id"`
	Availability []int  `json:"availability"`
}

// Instance is the immutable problem description for one solve. It must not
// be mutated after Validate succeeds; it is shared read-only across all
// solver workers.
type Instance struct {
	Days     int       `json:"days"`
	Weights  Weights   `json:"weights"`
	Patients []Patient `json:"patients"`
	Surgeons []Surgeon `json:"surgeons"`
	Theaters []Theater `json:"theaters"`

	// surgeonIndex maps a Surgeon.ID to its index in Surgeons, built once by
	// Validate so lookups during solving are O(1).
	surgeonIndex map[string]int
}

// SurgeonIndex returns the index of the surgeon with the given id, and
// whether it was found. Populated by Validate.
func (in *Instance) SurgeonIndex(id string) (int, bool) {
	idx, ok := in.surgeonIndex[id]
	return idx, ok
}

// PatientsOf returns the indices (into in.Patients) of patients belonging to
// the given surgeon, in Patients order.
func (in *Instance) PatientsOf(surgeonIdx int) []int {
	surgeonID := in.Surgeons[surgeonIdx].ID
	var out []int
	for i, p := range in.Patients {
		if p.SurgeonID == surgeonID {
			out = append(out, i)
		}
	}
	return out
}
