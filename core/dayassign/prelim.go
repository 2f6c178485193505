package dayassign

import "github.com/smuggr/arrango-ihtc/common/model"

// prelimBuckets buckets every eligible patient into its earliest available
// day (spec §4.2): release_day, clipped forward to locks.LockedDay and past
// any day barred for that particular patient. Each bucket is then sorted by
// the canonical §4.2 ordering. This seeds DynamicByDay; LPRelaxation does
// not use it, but applies the same sortDay ordering to each day after
// rounding.
func prelimBuckets(instance *model.Instance, patients []int, locks Locks) [][]int {
	buckets := make([][]int, instance.Days)
	for _, idx := range patients {
		day := instance.Patients[idx].ReleaseDay
		if locks.LockedDay > day {
			day = locks.LockedDay
		}
		for day < instance.Days && locks.isBarred(idx, day) {
			day++
		}
		if day >= instance.Days {
			day = instance.Days - 1
		}
		buckets[day] = append(buckets[day], idx)
	}
	for d := range buckets {
		sortDay(instance.Patients, buckets[d])
	}
	return buckets
}
