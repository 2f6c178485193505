package model

import "github.com/smuggr/arrango-ihtc/common/solverr"

// Validate rejects structurally invalid instances before stage 1 begins
// (spec §7 "Input errors"): unknown surgeon references, a mandatory patient
// whose due day precedes its release day, and negative capacities. On
// success it also builds the surgeon-id index used by SurgeonIndex.
func (in *Instance) Validate() error {
	if in.Days <= 0 {
		return solverr.New(solverr.CodeInputInvalid, "instance must have a positive number of days")
	}

	in.surgeonIndex = make(map[string]int, len(in.Surgeons))
	for i, s := range in.Surgeons {
		if _, dup := in.surgeonIndex[s.ID]; dup {
			return solverr.Newf(solverr.CodeInputInvalid, "duplicate surgeon id %q", s.ID)
		}
		in.surgeonIndex[s.ID] = i
		if len(s.MaxSurgeryTime) != in.Days {
			return solverr.Newf(solverr.CodeInputInvalid, "surgeon %q: max_surgery_time has %d entries, want %d", s.ID, len(s.MaxSurgeryTime), in.Days)
		}
		for d, v := range s.MaxSurgeryTime {
			if v < 0 {
				return solverr.Newf(solverr.CodeInputInvalid, "surgeon %q: negative capacity on day %d", s.ID, d)
			}
		}
	}

	for i, t := range in.Theaters {
		if len(t.Availability) != in.Days {
			return solverr.Newf(solverr.CodeInputInvalid, "theater %q: availability has %d entries, want %d", t.ID, len(t.Availability), in.Days)
		}
		for d, v := range t.Availability {
			if v < 0 {
				return solverr.Newf(solverr.CodeInputInvalid, "theater %d (%q): negative availability on day %d", i, t.ID, d)
			}
		}
	}

	for i, p := range in.Patients {
		if _, ok := in.surgeonIndex[p.SurgeonID]; !ok {
			return solverr.Newf(solverr.CodeInputInvalid, "patient %q: unknown surgeon_id %q", p.ID, p.SurgeonID)
		}
		if p.SurgeryDuration <= 0 {
			return solverr.Newf(solverr.CodeInputInvalid, "patient %q: surgery_duration must be positive", p.ID)
		}
		if p.ReleaseDay < 0 || p.ReleaseDay >= in.Days {
			return solverr.Newf(solverr.CodeInputInvalid, "patient %q: release_day %d out of range [0,%d)", p.ID, p.ReleaseDay, in.Days)
		}
		if p.Mandatory {
			if p.DueDay < p.ReleaseDay || p.DueDay >= in.Days {
				return solverr.Newf(solverr.CodeInputInvalid, "patient %q: mandatory due_day %d invalid for release_day %d, days %d", p.ID, p.DueDay, p.ReleaseDay, in.Days)
			}
		}
		in.Patients[i].SurgeonID = p.SurgeonID
		if !p.Mandatory && p.DueDay == 0 {
			in.Patients[i].DueDay = UnboundedDueDay
		}
	}

	return nil
}
