// Package dayassign implements the per-surgeon day-assignment stage
// (spec §4.2–§4.4): packing one surgeon's patients into days within the
// surgeon's daily time budget, via either an LP-relaxation-plus-rounding
// strategy or a dynamic-programming-style backtracking strategy.
package dayassign

import "github.com/smuggr/arrango-ihtc/common/model"

// less implements the canonical intra-day patient ordering of spec §4.2:
// patient a precedes b iff due_day(a) < due_day(b), or they're equal and
// duration(a) ≥ duration(b); ties broken by patient index for stability.
// This spec fixes the rule as "increasing due_day, then decreasing
// duration", resolving the two incompatible orderings the original source
// carried (spec §9 open question).
func less(patients []model.Patient, a, b int) bool {
	da, db := patients[a].DueDay, patients[b].DueDay
	if da != db {
		return da < db
	}
	if patients[a].SurgeryDuration != patients[b].SurgeryDuration {
		return patients[a].SurgeryDuration > patients[b].SurgeryDuration
	}
	return a < b
}

// sortDay sorts a day's patient-index list in place per the §4.2 ordering.
// Downstream stages (theater assignment) rely on this canonical order.
func sortDay(patients []model.Patient, lst []int) {
	// Insertion sort: day lists are short (a handful of patients sharing a
	// surgeon and a day), and stability under `less`'s own index tie-break
	// makes a simple O(n²) sort easiest to read correctly.
	for i := 1; i < len(lst); i++ {
		j := i
		for j > 0 && less(patients, lst[j], lst[j-1]) {
			lst[j], lst[j-1] = lst[j-1], lst[j]
			j--
		}
	}
}
