// Package orchestrator ties the per-surgeon day assignment (core/dayassign)
// and the per-day theater assignment (core/theaterassign) together into one
// solve, driving the patient-bump repair protocol of spec §4.6 whenever a
// day's theater LP can't be rounded into a feasible plan.
package orchestrator

import (
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
	"github.com/smuggr/arrango-ihtc/common/schedule"
	"github.com/smuggr/arrango-ihtc/common/solverr"
	"github.com/smuggr/arrango-ihtc/core/dayassign"
	"github.com/smuggr/arrango-ihtc/core/theaterassign"
)

// Solver runs the full two-stage solve for one instance.
type Solver struct {
	instance *model.Instance
	cfg      config.SolverConfig
	logger   *zap.Logger
}

// New builds a Solver. If logger is nil, logging is a no-op. Every Solver
// gets its own run ID, carried on every log line for the lifetime of the
// solve so a bump-repair sequence can be traced through the log stream.
func New(instance *model.Instance, cfg config.SolverConfig, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	return &Solver{instance: instance, cfg: cfg, logger: logger}
}

func (s *Solver) strategy() dayassign.Strategy {
	switch s.cfg.Strategy {
	case config.StrategyDynamicByDay:
		return dayassign.DynamicByDay{}
	default:
		return dayassign.WithFallback{Primary: dayassign.LPRelaxation{}, Fallback: dayassign.DynamicByDay{}}
	}
}

// Solve runs stage 1 across every surgeon, then stage 2 day by day,
// repairing theater-LP infeasibility via the bump protocol as it goes.
func (s *Solver) Solve() (schedule.Result, error) {
	assignment := schedule.New(s.instance)

	if err := s.solveDayAssignment(assignment); err != nil {
		return schedule.Result{}, err
	}
	assignment.CheckInvariants()

	for day := 0; day < s.instance.Days; day++ {
		if err := s.solveDayTheaters(assignment, day); err != nil {
			return schedule.Result{}, err
		}
	}

	assignment.Finalize()
	return assignment.ToResult(), nil
}

// solveDayAssignment runs stage 1 for every surgeon via the bounded worker
// pool, with no locking in effect — every surgeon's full patient set is up
// for assignment.
func (s *Solver) solveDayAssignment(assignment *schedule.Assignment) error {
	driver := dayassign.Driver{Strategy: s.strategy()}
	locksFor := func(surgeonIdx int) ([]int, dayassign.Locks) {
		return s.instance.PatientsOf(surgeonIdx), dayassign.Locks{LockedDay: 0}
	}

	results, err := driver.Run(s.instance, s.cfg, locksFor)
	if err != nil {
		s.logger.Error("stage 1 day assignment failed", zap.Error(err))
		return err
	}
	for surgeonIdx, result := range results {
		assignment.SetSurgeonDayLists(surgeonIdx, result.Days, result.Unassigned)
	}
	return nil
}

// solveDayTheaters assigns theaters for one day, repairing via the bump
// protocol up to cfg.MaxBumpIters times if the theater LP can't be rounded
// feasibly.
func (s *Solver) solveDayTheaters(assignment *schedule.Assignment, day int) error {
	strat := s.strategy()
	rng := rand.New(rand.NewSource(s.cfg.Seed + int64(day) + 1))

	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxBumpIters; attempt++ {
		plan, err := theaterassign.Assign(s.instance, day, patientsBySurgeonOnDay(assignment, s.instance, day))
		if err == nil {
			for idx, t := range plan.TheaterOf {
				assignment.TheaterSet(idx, t)
			}
			assignment.CheckTheaterCapacity(day)
			return nil
		}
		lastErr = err

		surgeonIdx, victim, found := selectVictim(s.instance, assignment, day)
		if !found {
			break
		}
		s.logger.Info("bumping patient to repair theater assignment",
			zap.Int("day", day), zap.Int("surgeon", surgeonIdx), zap.Int("patient", victim), zap.Int("attempt", attempt))

		if err := s.repairSurgeon(assignment, strat, rng, surgeonIdx, day, victim); err != nil {
			lastErr = err
			continue
		}
	}

	return solverr.Fatal(day, lastErr)
}

// repairSurgeon re-solves surgeon s's schedule from day d onward (days
// before d stay frozen), barring victim from day d so it's forced later —
// the locked/barred contract of spec §4.6.
func (s *Solver) repairSurgeon(assignment *schedule.Assignment, strat dayassign.Strategy, rng *rand.Rand, surgeonIdx, day, victim int) error {
	var patients []int
	for d := day; d < s.instance.Days; d++ {
		patients = append(patients, assignment.PatientsOnDay(surgeonIdx, d)...)
	}
	patients = append(patients, assignment.Unassigned[surgeonIdx]...)

	locks := dayassign.Locks{
		LockedDay: day,
		Barred:    map[int]map[int]bool{victim: {day: true}},
	}

	result, err := strat.Assign(s.instance, surgeonIdx, patients, locks, rng, s.cfg)
	if err != nil {
		return err
	}

	newDays := make([][]int, s.instance.Days)
	for d := 0; d < day; d++ {
		newDays[d] = assignment.PatientsOnDay(surgeonIdx, d)
	}
	for d := day; d < s.instance.Days; d++ {
		newDays[d] = result.Days[d]
	}
	assignment.SetSurgeonDayLists(surgeonIdx, newDays, result.Unassigned)
	assignment.Lock(surgeonIdx, day)
	return nil
}

// patientsBySurgeonOnDay collects every surgeon's patient list for a single
// day, the input shape theaterassign.Assign expects.
func patientsBySurgeonOnDay(assignment *schedule.Assignment, instance *model.Instance, day int) map[int][]int {
	out := make(map[int][]int, len(instance.Surgeons))
	for surgeonIdx := range instance.Surgeons {
		if ps := assignment.PatientsOnDay(surgeonIdx, day); len(ps) > 0 {
			out[surgeonIdx] = ps
		}
	}
	return out
}

// selectVictim picks the patient to bump off a day whose theater LP failed
// to round: optional patients before mandatory, then smallest duration,
// then largest remaining slack — the least disruptive patient to move.
func selectVictim(instance *model.Instance, assignment *schedule.Assignment, day int) (surgeonIdx, patientIdx int, found bool) {
	type candidate struct {
		surgeonIdx, patientIdx int
	}
	var candidates []candidate
	for s := range instance.Surgeons {
		for _, idx := range assignment.PatientsOnDay(s, day) {
			candidates = append(candidates, candidate{s, idx})
		}
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}

	slack := func(p model.Patient) int {
		if p.Mandatory {
			return p.DueDay - day
		}
		return int(model.UnboundedDueDay)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		pb, pc := instance.Patients[best.patientIdx], instance.Patients[c.patientIdx]
		switch {
		case pb.Mandatory != pc.Mandatory:
			if pc.Mandatory {
				continue // pc mandatory, pb optional: keep pb
			}
			best = c
		case pc.SurgeryDuration != pb.SurgeryDuration:
			if pc.SurgeryDuration < pb.SurgeryDuration {
				best = c
			}
		case slack(pc) > slack(pb):
			best = c
		}
	}
	return best.surgeonIdx, best.patientIdx, true
}
