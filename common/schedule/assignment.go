// Package schedule holds the Assignment value — the mutable,
// single-writer, in-progress-or-final schedule shared read-only across
// stages between writer epochs (spec §3 "Assignment").
package schedule

import "github.com/smuggr/arrango-ihtc/common/model"

const unsetTheater = -1

// Assignment is the mutable solve state. It has exactly one writer at a
// time: stage 1 workers each own their own surgeon's partition during
// stage 1, and the orchestrator owns the whole value during stage 2 and
// the bump/retry loop. No locks guard it; ownership is enforced by
// convention, matching spec §5's "no locks on the Assignment itself".
type Assignment struct {
	instance *model.Instance

	// DayLists[surgeonIdx][day] is the ordered list of patient indices
	// assigned to that (surgeon, day). DayLists[s] has instance.Days
	// entries; there is no day-D bucket here (unassigned optionals live in
	// Unassigned instead) once stage 1 has fully resolved, but during
	// rounding a transient day-D bucket is used — see dayassign.
	DayLists []([][]int)

	// Unassigned[surgeonIdx] holds optional-patient indices that stage 1
	// could not place for that surgeon.
	Unassigned [][]int

	// TheaterOf[patientIdx] is the theater index assigned by stage 2, or
	// unsetTheater before stage 2 runs on that patient's day.
	TheaterOf []int

	// LockedDays[surgeonIdx] is the smallest day index still mutable for
	// that surgeon; days below it are frozen (I6).
	LockedDays []int

	InProgress bool
}

// New creates an empty Assignment sized for the given instance.
func New(instance *model.Instance) *Assignment {
	a := &Assignment{
		instance:   instance,
		DayLists:   make([][][]int, len(instance.Surgeons)),
		Unassigned: make([][]int, len(instance.Surgeons)),
		TheaterOf:  make([]int, len(instance.Patients)),
		LockedDays: make([]int, len(instance.Surgeons)),
		InProgress: true,
	}
	for s := range instance.Surgeons {
		a.DayLists[s] = make([][]int, instance.Days)
	}
	for i := range a.TheaterOf {
		a.TheaterOf[i] = unsetTheater
	}
	return a
}

// SetSurgeonDayLists replaces surgeon s's entire day-list/unassigned
// partition, as produced by a Surgery-Day Assigner strategy. Days below
// LockedDays[s] must be unchanged; callers are responsible for only
// passing strategies that respect that (dayassign strategies accept and
// honor the lock).
func (a *Assignment) SetSurgeonDayLists(s int, days [][]int, unassigned []int) {
	a.DayLists[s] = days
	a.Unassigned[s] = unassigned
}

// TheaterSet records that patient idx was placed in theater t by stage 2.
func (a *Assignment) TheaterSet(patientIdx, theaterIdx int) {
	a.TheaterOf[patientIdx] = theaterIdx
}

// HasTheater reports whether stage 2 has already assigned a theater to
// patientIdx.
func (a *Assignment) HasTheater(patientIdx int) bool {
	return a.TheaterOf[patientIdx] != unsetTheater
}

// Lock raises LockedDays[s] to day if day is larger than the current lock,
// freezing days below it (I6).
func (a *Assignment) Lock(s, day int) {
	if day > a.LockedDays[s] {
		a.LockedDays[s] = day
	}
}

// PatientsOnDay returns the patient indices assigned to (s, day) across
// DayLists — a convenience accessor used by the theater assigner and the
// bump orchestrator.
func (a *Assignment) PatientsOnDay(s, day int) []int {
	return a.DayLists[s][day]
}

// Finalize marks the assignment as complete; InProgress becomes false once
// every day has been processed by stage 2 (spec §3 lifecycle).
func (a *Assignment) Finalize() {
	a.InProgress = false
}

// Clone returns a deep copy whose day lists, unassigned lists, theater
// assignments and locks share no backing arrays with the original.
func (a *Assignment) Clone() *Assignment {
	out := &Assignment{
		instance:   a.instance,
		DayLists:   make([][][]int, len(a.DayLists)),
		Unassigned: make([][]int, len(a.Unassigned)),
		TheaterOf:  append([]int(nil), a.TheaterOf...),
		LockedDays: append([]int(nil), a.LockedDays...),
		InProgress: a.InProgress,
	}
	for s, days := range a.DayLists {
		out.DayLists[s] = make([][]int, len(days))
		for d, lst := range days {
			out.DayLists[s][d] = append([]int(nil), lst...)
		}
	}
	for s, u := range a.Unassigned {
		out.Unassigned[s] = append([]int(nil), u...)
	}
	return out
}
