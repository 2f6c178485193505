package dayassign

import (
	"math/rand"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
)

// Locks restricts a strategy invocation to the mutable region of a
// surgeon's schedule (spec §4.3 "Locking", §4.6 bump protocol).
type Locks struct {
	// LockedDay is the smallest day a patient may be assigned to; days
	// below it are frozen and are simply never offered as a variable.
	LockedDay int
	// Barred maps a patient index to the set of days it may not use, in
	// addition to LockedDay — used to keep a just-bumped victim out of the
	// day it was bumped from and everything before it.
	Barred map[int]map[int]bool
}

func (l Locks) isBarred(patientIdx, day int) bool {
	if day < l.LockedDay {
		return true
	}
	if l.Barred == nil {
		return false
	}
	return l.Barred[patientIdx][day]
}

// Result is one surgeon's day assignment: an ordered patient list per day,
// plus the optional patients that could not be placed.
type Result struct {
	Days       [][]int // length instance.Days
	Unassigned []int
}

// Strategy is the shared contract of spec §4.3/§4.4/§9: given the instance,
// a surgeon, the patient indices currently eligible for (re)assignment, and
// the locked/barred region, produce a day assignment or an error from the
// spec §7 taxonomy.
type Strategy interface {
	Assign(instance *model.Instance, surgeonIdx int, patients []int, locks Locks, rng *rand.Rand, cfg config.SolverConfig) (Result, error)
}
