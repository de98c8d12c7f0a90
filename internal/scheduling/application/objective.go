package application

import "github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"

// Breakdown is the per-term value of the weighted objective, kept
// alongside the weighted total for diagnostics and tests.
type Breakdown struct {
	Idle               int
	Makespan           int
	PriorityViolations int
	ArrivalViolations  int
	Total              int
}

// Score computes OBJ for a candidate assignment. Every visit in
// in.Visits is, by construction (see domain.Visit), a visit that will be
// placed — so "presence-true" in the objective formulas is simply "every visit".
func Score(in *domain.Instance, a domain.Assignment) Breakdown {
	idle := scoreIdle(in, a)
	makespan := scoreMakespan(in, a)
	priorityViol := scorePriorityViolations(in, a)
	arrivalViol := scoreArrivalPriorityViolations(in, a)

	w := in.Weights
	total := w.Idle*idle + w.Makespan*makespan + w.Priority*priorityViol + w.ArrivalPriority*arrivalViol

	return Breakdown{
		Idle:               idle,
		Makespan:           makespan,
		PriorityViolations: priorityViol,
		ArrivalViolations:  arrivalViol,
		Total:              total,
	}
}

func scoreIdle(in *domain.Instance, a domain.Assignment) int {
	total := 0
	for pi, p := range in.Patients {
		visits := in.VisitsFor(pi)
		if len(visits) == 0 {
			continue
		}
		busy := 0
		lastEnd := 0
		for _, vi := range visits {
			busy += in.Visits[vi].DurationCells
			if end := a.End(in, vi); end > lastEnd {
				lastEnd = end
			}
		}
		total += (lastEnd - p.ArrivalCell) - busy
	}
	return total
}

func scoreMakespan(in *domain.Instance, a domain.Assignment) int {
	makespan := 0
	for i := range in.Visits {
		if end := a.End(in, i); end > makespan {
			makespan = end
		}
	}
	return makespan
}

func scorePriorityViolations(in *domain.Instance, a domain.Assignment) int {
	violations := 0
	for pi := range in.Patients {
		visits := in.VisitsFor(pi)
		for _, vi := range visits {
			for _, vj := range visits {
				if vi == vj {
					continue
				}
				si := in.Schedulables[in.Visits[vi].SchedulableIndex]
				sj := in.Schedulables[in.Visits[vj].SchedulableIndex]
				if si.Priority < sj.Priority && a.Start[vj] < a.Start[vi] {
					violations++
				}
			}
		}
	}
	return violations
}

// scoreArrivalPriorityViolations implements the cross-patient tie-break
// rule: within each arrival-cell group, patients are
// expected (in input order) to receive non-decreasing-priority-number units
// at their arrival cell. A violation is counted when an earlier patient's
// arrival-cell unit is less important (a higher priority number) than a
// later patient's.
func scoreArrivalPriorityViolations(in *domain.Instance, a domain.Assignment) int {
	groups := make(map[int][]int)
	var order []int
	for pi, p := range in.Patients {
		if _, seen := groups[p.ArrivalCell]; !seen {
			order = append(order, p.ArrivalCell)
		}
		groups[p.ArrivalCell] = append(groups[p.ArrivalCell], pi)
	}

	violations := 0
	for _, cell := range order {
		group := groups[cell]
		if len(group) < 2 {
			continue
		}
		for k := 1; k < len(group); k++ {
			prevPriority, prevOK := arrivalUnitPriority(in, a, group[k-1])
			curPriority, curOK := arrivalUnitPriority(in, a, group[k])
			if !prevOK || !curOK {
				continue
			}
			if prevPriority > curPriority {
				violations++
			}
		}
	}
	return violations
}

func arrivalUnitPriority(in *domain.Instance, a domain.Assignment, patientIndex int) (int, bool) {
	arrival := in.Patients[patientIndex].ArrivalCell
	for _, vi := range in.VisitsFor(patientIndex) {
		if a.Start[vi] == arrival {
			return in.Schedulables[in.Visits[vi].SchedulableIndex].Priority, true
		}
	}
	return 0, false
}
