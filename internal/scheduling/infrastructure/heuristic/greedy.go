// Package heuristic provides a zero-dependency greedy scheduler, grounded
// in a shop-floor phase-shifted-retry assignment pattern: walk candidate
// start cells in order and retry on conflict rather than backtrack.
//
// It is never selected by default: it exists as a documented degraded
// mode for when the constraint search fails internally. Its output still
// respects every hard constraint, but it makes no optimality claim: the
// fallback package reports its result as StatusFeasible, never StatusOptimal.
package heuristic

import (
	"sort"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

// Schedule greedily assigns every visit a start cell, trying earliest
// feasible cells first in priority order, and reports whether every visit
// could be placed without violating a hard constraint.
func Schedule(in *domain.Instance) (domain.Assignment, bool) {
	order := visitOrder(in)
	start := make([]int, len(in.Visits))
	for i := range start {
		start[i] = -1
	}

	patientBusy := make(map[int][]interval, len(in.Patients))
	schedulableLoad := make(map[int][]int) // schedulableIndex -> per-cell load

	for _, vi := range order {
		v := in.Visits[vi]
		if v.Pinned {
			if !fits(v, v.PinnedStart, patientBusy[v.PatientIndex], schedulableLoad[v.SchedulableIndex], in.Schedulables[v.SchedulableIndex].Capacity) {
				return domain.Assignment{}, false
			}
			commit(v, v.PinnedStart, vi, start, patientBusy, schedulableLoad)
			continue
		}

		placed := false
		for cell := v.MinStart; cell <= v.MaxStart; cell++ {
			if fits(v, cell, patientBusy[v.PatientIndex], schedulableLoad[v.SchedulableIndex], in.Schedulables[v.SchedulableIndex].Capacity) {
				commit(v, cell, vi, start, patientBusy, schedulableLoad)
				placed = true
				break
			}
		}
		if !placed {
			return domain.Assignment{}, false
		}
	}

	return domain.Assignment{Start: start}, true
}

type interval struct{ start, end int }

// visitOrder places pinned visits first (they are non-negotiable), then
// sorts the rest by schedulable priority and patient input order, mirroring
// the arrival-priority preference the objective scorer favors.
func visitOrder(in *domain.Instance) []int {
	order := make([]int, len(in.Visits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := in.Visits[order[a]], in.Visits[order[b]]
		if va.Pinned != vb.Pinned {
			return va.Pinned
		}
		pa := in.Schedulables[va.SchedulableIndex].Priority
		pb := in.Schedulables[vb.SchedulableIndex].Priority
		if pa != pb {
			return pa < pb
		}
		return va.PatientIndex < vb.PatientIndex
	})
	return order
}

func fits(v domain.Visit, cell int, busy []interval, load []int, capacity int) bool {
	end := cell + v.DurationCells
	for _, b := range busy {
		if cell < b.end && b.start < end {
			return false
		}
	}
	for c := cell; c < end; c++ {
		if c < len(load) && load[c] >= capacity {
			return false
		}
	}
	return true
}

func commit(v domain.Visit, cell, visitIndex int, start []int, patientBusy map[int][]interval, schedulableLoad map[int][]int) {
	start[visitIndex] = cell
	end := cell + v.DurationCells
	patientBusy[v.PatientIndex] = append(patientBusy[v.PatientIndex], interval{start: cell, end: end})

	load := schedulableLoad[v.SchedulableIndex]
	for len(load) < end {
		load = append(load, 0)
	}
	for c := cell; c < end; c++ {
		load[c]++
	}
	schedulableLoad[v.SchedulableIndex] = load
}
