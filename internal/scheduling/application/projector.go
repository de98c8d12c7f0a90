package application

import (
	"errors"
	"sort"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

// Project materializes a winning assignment into the ordered slot list:
// patients in input order, a patient's visits sorted by start cell.
func Project(in *domain.Instance, a domain.Assignment, status domain.Status) domain.SolveResult {
	slots := make([]domain.PlacedVisit, 0, len(in.Visits))
	for pi, p := range in.Patients {
		visits := in.VisitsFor(pi)
		sort.Slice(visits, func(x, y int) bool { return a.Start[visits[x]] < a.Start[visits[y]] })
		for _, vi := range visits {
			v := in.Visits[vi]
			cell := a.Start[vi]
			slots = append(slots, domain.PlacedVisit{
				PatientName:   p.Name,
				StartCell:     cell,
				StartLabel:    in.Grid.Label(cell),
				SchedulableID: in.Schedulables[v.SchedulableIndex].ID,
				Pinned:        v.Pinned,
			})
		}
	}

	breakdown := Score(in, a)
	return domain.SolveResult{
		Status:       status,
		Slots:        slots,
		Objective:    breakdown.Total,
		HasObjective: true,
	}
}

// ErrorResult classifies a normalize/solve error into the abstract ERROR
// outcome, preserving a reproducible, field-naming message.
func ErrorResult(err error) domain.SolveResult {
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrCancelled):
		message = "cancelled: " + message
	case errors.Is(err, domain.ErrTimeout):
		message = "timeout: " + message
	case errors.Is(err, domain.ErrInternal):
		message = "internal: " + message
	}
	return domain.SolveResult{Status: domain.StatusError, Message: message}
}
