package schedule

import (
	"fmt"

	"github.com/smuggr/arrango-ihtc/common/solverr"
)

// CheckInvariants verifies I1, I2, I3 and I5 against the instance this
// Assignment was built for (I4 is per day and is checked by
// CheckTheaterCapacity). Violations are programmer errors (spec §7): this panics via
// solverr.InvariantViolation rather than returning an error, since an
// invariant breach here means a stage's own logic is broken, not that the
// input data was bad.
func (a *Assignment) CheckInvariants() {
	instance := a.instance
	seen := make(map[int]bool, len(instance.Patients))

	for s, days := range a.DayLists {
		surgeonID := instance.Surgeons[s].ID
		for d, lst := range days {
			sum := 0
			for _, idx := range lst {
				if seen[idx] {
					solverr.InvariantViolation("I1", fmt.Sprintf("patient %d appears twice", idx))
				}
				seen[idx] = true

				p := instance.Patients[idx]
				if p.SurgeonID != surgeonID {
					solverr.InvariantViolation("I2", fmt.Sprintf("patient %d assigned to wrong surgeon", idx))
				}
				if p.ReleaseDay > d {
					solverr.InvariantViolation("I2", fmt.Sprintf("patient %d scheduled before release day", idx))
				}
				if p.Mandatory && d > p.DueDay {
					solverr.InvariantViolation("I2", fmt.Sprintf("mandatory patient %d scheduled after due day", idx))
				}
				sum += p.SurgeryDuration
			}
			if sum > instance.Surgeons[s].MaxSurgeryTime[d] {
				solverr.InvariantViolation("I3", fmt.Sprintf("surgeon %d day %d over capacity: %d > %d", s, d, sum, instance.Surgeons[s].MaxSurgeryTime[d]))
			}
		}

		for _, idx := range a.Unassigned[s] {
			if seen[idx] {
				solverr.InvariantViolation("I1", fmt.Sprintf("patient %d appears twice", idx))
			}
			seen[idx] = true
			if instance.Patients[idx].Mandatory {
				solverr.InvariantViolation("I5", fmt.Sprintf("mandatory patient %d left unassigned", idx))
			}
		}
	}

	for idx := range instance.Patients {
		if !seen[idx] {
			solverr.InvariantViolation("I1", fmt.Sprintf("patient %d appears in no list", idx))
		}
	}
}

// CheckTheaterCapacity verifies I4 for a single day once stage 2 has run on
// it.
func (a *Assignment) CheckTheaterCapacity(day int) {
	instance := a.instance
	sums := make([]int, len(instance.Theaters))
	for s, days := range a.DayLists {
		_ = s
		for _, idx := range days[day] {
			if !a.HasTheater(idx) {
				continue
			}
			sums[a.TheaterOf[idx]] += instance.Patients[idx].SurgeryDuration
		}
	}
	for t, sum := range sums {
		if sum > instance.Theaters[t].Availability[day] {
			solverr.InvariantViolation("I4", fmt.Sprintf("theater %d day %d over capacity: %d > %d", t, day, sum, instance.Theaters[t].Availability[day]))
		}
	}
}
