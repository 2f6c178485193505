package schedule

import (
	"encoding/json"
)

// PatientOutcome is the external-facing result for one patient (spec §6
// "Output"): either an assigned (day, theater) pair, or unscheduled.
type PatientOutcome struct {
	PatientID   string `json:"patient_id"`
	Day         int    `json:"day"`
	TheaterID   string `json:"theater_id,omitempty"`
	Unscheduled bool   `json:"unscheduled,omitempty"`
}

// MarshalJSON omits day for unscheduled patients and, crucially, still emits
// it for patients placed on day 0 — a plain `omitempty` on Day would drop
// that field for every day-0 placement, making it indistinguishable from
// "no day assigned".
func (o PatientOutcome) MarshalJSON() ([]byte, error) {
	type outcome struct {
		PatientID   string `json:"patient_id"`
		Day         *int   `json:"day,omitempty"`
		TheaterID   string `json:"theater_id,omitempty"`
		Unscheduled bool   `json:"unscheduled,omitempty"`
	}
	out := outcome{PatientID: o.PatientID, TheaterID: o.TheaterID, Unscheduled: o.Unscheduled}
	if !o.Unscheduled {
		day := o.Day
		out.Day = &day
	}
	return json.Marshal(out)
}

// Result is the emitted form of a finished Assignment, ready for an
// external solution-file emitter to serialize.
type Result struct {
	Outcomes []PatientOutcome `json:"outcomes"`
}

// ToResult flattens a finalized Assignment into the external Result shape.
func (a *Assignment) ToResult() Result {
	instance := a.instance
	outcomes := make([]PatientOutcome, len(instance.Patients))
	for i, p := range instance.Patients {
		outcomes[i] = PatientOutcome{PatientID: p.ID}
	}

	for s, days := range a.DayLists {
		for d, lst := range days {
			for _, idx := range lst {
				o := &outcomes[idx]
				o.Day = d
				if a.HasTheater(idx) {
					o.TheaterID = instance.Theaters[a.TheaterOf[idx]].ID
				}
				_ = s
			}
		}
	}
	for _, u := range a.Unassigned {
		for _, idx := range u {
			outcomes[idx].Unscheduled = true
		}
	}

	return Result{Outcomes: outcomes}
}
