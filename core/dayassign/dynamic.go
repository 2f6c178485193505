package dayassign

import (
	"math/rand"
	"sort"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/model"
	"github.com/smuggr/arrango-ihtc/common/solverr"
)

// DynamicByDay is the greedy-with-recursive-forward-bumping fallback
// strategy of spec §4.4, preferred for validation and small instances.
type DynamicByDay struct{}

// dynamicState carries the mutable working copy threaded through the
// recursive day-forward bumping of §4.4.
type dynamicState struct {
	instance   *model.Instance
	surgeonIdx int
	capacity   []int
	dayLists   [][]int
	locks      Locks
	overflow   []int // patients bumped off the last day: the "unassigned" result
}

// Assign implements Strategy for the DynamicByDay fallback.
func (DynamicByDay) Assign(instance *model.Instance, surgeonIdx int, patients []int, locks Locks, _ *rand.Rand, _ config.SolverConfig) (Result, error) {
	st := &dynamicState{
		instance:   instance,
		surgeonIdx: surgeonIdx,
		capacity:   append([]int(nil), instance.Surgeons[surgeonIdx].MaxSurgeryTime...),
		dayLists:   prelimBuckets(instance, patients, locks),
		locks:      locks,
	}

	start := locks.LockedDay
	if start >= instance.Days {
		start = instance.Days - 1
	}
	if err := st.arrangeFrom(start); err != nil {
		return Result{}, err
	}

	var unassigned []int
	for _, idx := range st.overflow {
		if instance.Patients[idx].Mandatory {
			return Result{}, solverr.MandatoryUnassignable(idx)
		}
		unassigned = append(unassigned, idx)
	}

	for d := range st.dayLists {
		sortDay(instance.Patients, st.dayLists[d])
	}

	return Result{Days: st.dayLists, Unassigned: unassigned}, nil
}

func (st *dynamicState) duration(idx int) int {
	return st.instance.Patients[idx].SurgeryDuration
}

func sumDurations(st *dynamicState, list []int) int {
	sum := 0
	for _, idx := range list {
		sum += st.duration(idx)
	}
	return sum
}

// movableOrder returns the positions (into list) of patients eligible to be
// bumped off day `day`, walking from the tail toward the front. A mandatory
// patient whose due day is exactly `day` has no room left to move forward
// and is skipped — this resolves spec §4.4's "due to release-day pinning"
// phrasing as a due-day pinning check (the only pinning that can actually
// occur, since every patient already on `day` satisfies day ≥ release_day
// by I2).
func movableOrder(instance *model.Instance, list []int, day int) []int {
	var order []int
	for i := len(list) - 1; i >= 0; i-- {
		p := instance.Patients[list[i]]
		if p.Mandatory && p.DueDay <= day {
			continue
		}
		order = append(order, i)
	}
	return order
}

// arrangeFrom implements the recursive day-forward bumping of spec §4.4.
func (st *dynamicState) arrangeFrom(day int) error {
	sum := sumDurations(st, st.dayLists[day])
	if sum <= st.capacity[day] {
		if day == st.instance.Days-1 {
			return nil
		}
		return st.arrangeFrom(day + 1)
	}

	if day == st.instance.Days-1 {
		return st.bumpOverflowFromLastDay(day)
	}

	order := movableOrder(st.instance, st.dayLists[day], day)
	overflowAmount := sum - st.capacity[day]

	minK := -1
	running := 0
	for k, pos := range order {
		running += st.duration(st.dayLists[day][pos])
		if running >= overflowAmount {
			minK = k + 1
			break
		}
	}
	if minK == -1 {
		return solverr.CapacityUnreachable(day)
	}

	for k := minK; k <= len(order); k++ {
		bumpedPositions := append([]int(nil), order[:k]...)
		sort.Ints(bumpedPositions)

		savedDay := append([]int(nil), st.dayLists[day]...)
		savedNext := append([]int(nil), st.dayLists[day+1]...)

		bumpedSet := make(map[int]bool, k)
		for _, pos := range bumpedPositions {
			bumpedSet[pos] = true
		}
		var remaining, bumped []int
		for i, idx := range savedDay {
			if bumpedSet[i] {
				bumped = append(bumped, idx)
			} else {
				remaining = append(remaining, idx)
			}
		}
		st.dayLists[day] = remaining
		st.dayLists[day+1] = append(append([]int(nil), bumped...), savedNext...)

		err := st.arrangeFrom(day + 1)
		if err == nil {
			return nil
		}

		st.dayLists[day] = savedDay
		st.dayLists[day+1] = savedNext
	}

	return solverr.AllAttemptsFailed(day)
}

// bumpOverflowFromLastDay handles capacity overflow on the final day: there
// is no day to push into, so the minimal movable suffix is routed to the
// "unassigned" result instead (spec §4.4 point 3). Mandatory patients are
// never movable here (no due day lies past the last day), so if dropping
// every optional patient still leaves the day over capacity this returns
// CapacityUnreachable.
func (st *dynamicState) bumpOverflowFromLastDay(day int) error {
	list := st.dayLists[day]
	overflowAmount := sumDurations(st, list) - st.capacity[day]
	order := movableOrder(st.instance, list, day)

	running := 0
	var bumpedPositions []int
	for _, pos := range order {
		bumpedPositions = append(bumpedPositions, pos)
		running += st.duration(list[pos])
		if running >= overflowAmount {
			break
		}
	}
	if running < overflowAmount {
		return solverr.CapacityUnreachable(day)
	}

	sort.Ints(bumpedPositions)
	bumpedSet := make(map[int]bool, len(bumpedPositions))
	for _, pos := range bumpedPositions {
		bumpedSet[pos] = true
	}
	var remaining []int
	for i, idx := range list {
		if bumpedSet[i] {
			st.overflow = append(st.overflow, idx)
		} else {
			remaining = append(remaining, idx)
		}
	}
	st.dayLists[day] = remaining
	return nil
}
