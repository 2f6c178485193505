package dayassign

import (
	"math"
	"math/rand"
	"sort"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
	"github.com/smuggr/arrango-ihtc/common/solverr"
	"github.com/smuggr/arrango-ihtc/core/lp"
)

// LPRelaxation is the default day-assignment strategy of spec §4.3: solve a
// continuous knapsack-spread relaxation per surgeon, then round it via an
// entropy-ordered random walk over each patient's day distribution, with a
// final squeeze pass for anything bumped.
//
// Grounded on the Rust original's lp_relaxation_surgery_knapsack.
type LPRelaxation struct{}

func (LPRelaxation) Assign(instance *model.Instance, surgeonIdx int, patients []int, locks Locks, rng *rand.Rand, cfg config.SolverConfig) (Result, error) {
	capacities := append([]float64(nil), asFloat(instance.Surgeons[surgeonIdx].MaxSurgeryTime)...)
	days := instance.Days

	problem := lp.NewProblem()
	// dayVars[patientIdx][day] holds the LP variable id; day == days means
	// the sink. Only days actually offered to this patient are present.
	dayVars := make(map[int]map[int]lp.VarID, len(patients))
	dayOrder := make(map[int][]int, len(patients)) // ascending day keys per patient, sink last

	for _, idx := range patients {
		p := instance.Patients[idx]
		firstDay := p.ReleaseDay
		if locks.LockedDay > firstDay {
			firstDay = locks.LockedDay
		}
		finalDay := days
		if p.Mandatory {
			finalDay = p.DueDay
		}
		if firstDay > finalDay {
			return Result{}, solverr.MandatoryUnassignable(idx)
		}

		vars := make(map[int]lp.VarID)
		var terms []lp.Term
		var order []int
		for day := firstDay; day <= finalDay; day++ {
			if day < days && locks.isBarred(idx, day) {
				continue
			}
			weight := dayWeight(p, day, days, cfg)
			v := problem.AddVar(weight, 0, 1)
			vars[day] = v
			order = append(order, day)
			terms = append(terms, lp.Term{Var: v, Coef: 1})
		}
		if len(terms) == 0 {
			return Result{}, solverr.MandatoryUnassignable(idx)
		}
		problem.AddConstraint(terms, lp.EQ, 1)
		dayVars[idx] = vars
		dayOrder[idx] = order
	}

	for day := 0; day < days; day++ {
		var terms []lp.Term
		for _, idx := range patients {
			v, ok := dayVars[idx][day]
			if !ok {
				continue
			}
			terms = append(terms, lp.Term{Var: v, Coef: float64(instance.Patients[idx].SurgeryDuration)})
		}
		if len(terms) == 0 {
			continue
		}
		problem.AddConstraint(terms, lp.LE, capacities[day])
	}

	solution, err := problem.Solve()
	if err != nil {
		return Result{}, solverr.SolveFailed(err, "day-assignment relaxation")
	}

	order := entropyOrder(instance, patients, dayVars, solution)

	buckets := make([][]int, days+1) // buckets[days] is the sink
	available := append([]float64(nil), capacities...)

	for _, idx := range order {
		if err := roundOne(instance, idx, dayOrder[idx], dayVars[idx], solution, available, buckets, rng); err != nil {
			return Result{}, err
		}
	}

	squeeze(instance, buckets, available, dayOrder)

	// Rounding leaves each day's list in commit order, not the canonical
	// §4.2 ordering downstream stages (theaterassign's split point) rely on.
	for d := 0; d < days; d++ {
		sortDay(instance.Patients, buckets[d])
	}

	return Result{Days: buckets[:days], Unassigned: buckets[days]}, nil
}

func asFloat(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// dayWeight mirrors the Rust weight_func: mandatory patients pay
// mandatory_mult per day of delay past release; optional patients pay one
// unit per day of delay, or bump_weight if routed to the sink.
func dayWeight(p model.Patient, day, days int, cfg config.SolverConfig) float64 {
	if p.Mandatory {
		return cfg.MandatoryMult * float64(day-p.ReleaseDay)
	}
	if day < days {
		return float64(day - p.ReleaseDay)
	}
	return cfg.BumpWeight
}

// entropyOrder sorts patients by Shannon entropy of their LP day
// distribution (mandatory first, then ascending entropy), the order in
// which the rounding walk processes them — lowest-entropy (most decided)
// patients are rounded first so their mass doesn't get disturbed by
// capacity consumed elsewhere.
func entropyOrder(instance *model.Instance, patients []int, dayVars map[int]map[int]lp.VarID, solution *lp.Solution) []int {
	type scored struct {
		idx     int
		entropy float64
	}
	scores := make([]scored, 0, len(patients))
	for _, idx := range patients {
		var entropy float64
		for _, v := range dayVars[idx] {
			val := solution.Value(v)
			if val <= 0 {
				continue
			}
			entropy -= val * math.Log2(val)
		}
		scores = append(scores, scored{idx: idx, entropy: entropy})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		pi, pj := instance.Patients[scores[i].idx], instance.Patients[scores[j].idx]
		if pi.Mandatory != pj.Mandatory {
			return pi.Mandatory
		}
		return scores[i].entropy < scores[j].entropy
	})
	out := make([]int, len(scores))
	for i, s := range scores {
		out[i] = s.idx
	}
	return out
}

// roundOne performs the entropy-ordered random rounding walk for a single
// patient: draw a uniform number, walk the cumulative probability of its
// offered days (skipping any already cancelled for lack of capacity), and
// commit to the first day whose cumulative mass covers the draw. A day that
// lacks the capacity to host the patient is cancelled and its mass
// redistributed over the rest via conditionalDivider; if every positive-mass
// day cancels, the patient sinks (optional) or the patient is unassignable
// (mandatory).
func roundOne(instance *model.Instance, idx int, order []int, vars map[int]lp.VarID, solution *lp.Solution, available []float64, buckets [][]int, rng *rand.Rand) error {
	p := instance.Patients[idx]
	duration := float64(p.SurgeryDuration)
	days := len(available)
	conditionalDivider := 1.0
	cancelled := make(map[int]bool)

	for {
		randNum := rng.Float64()
		cumulProb := 0.0
		committed := false
		restart := false

		for _, day := range order {
			if cancelled[day] {
				continue
			}
			val := solution.Value(vars[day])
			cumulProb += val / conditionalDivider
			if randNum >= cumulProb+1e-6 {
				continue
			}

			if day == days {
				buckets[days] = append(buckets[days], idx)
				committed = true
				break
			}
			if duration <= available[day] {
				buckets[day] = append(buckets[day], idx)
				available[day] -= duration
				committed = true
				break
			}

			cancelled[day] = true
			conditionalDivider -= val
			if conditionalDivider <= 1e-6 {
				if !p.Mandatory {
					buckets[days] = append(buckets[days], idx)
					committed = true
					break
				}
				return solverr.MandatoryUnassignable(idx)
			}
			restart = true
			break
		}

		if committed {
			return nil
		}
		if restart {
			continue
		}
		return solverr.New(solverr.CodeRoundingInfeasible, "rounding draw matched no offered day")
	}
}

// squeeze greedily moves bumped patients back onto days with spare capacity,
// smallest duration first into the day with the most remaining room among
// the days offered to that patient (offered[idx], the sink excluded), until
// no further move fits.
func squeeze(instance *model.Instance, buckets [][]int, available []float64, offered map[int][]int) {
	days := len(buckets) - 1
	for {
		sink := buckets[days]
		if len(sink) == 0 {
			return
		}

		bestJ, minDuration := -1, math.MaxInt32
		for j, idx := range sink {
			d := instance.Patients[idx].SurgeryDuration
			if d < minDuration {
				minDuration, bestJ = d, j
			}
		}

		bestDay, maxCap := -1, -1.0
		for _, d := range offered[sink[bestJ]] {
			if d < len(available) && available[d] > maxCap {
				maxCap, bestDay = available[d], d
			}
		}

		if bestDay == -1 || float64(minDuration) > maxCap {
			return
		}

		moved := sink[bestJ]
		buckets[days] = append(append([]int(nil), sink[:bestJ]...), sink[bestJ+1:]...)
		buckets[bestDay] = append(buckets[bestDay], moved)
		available[bestDay] -= float64(minDuration)
	}
}
