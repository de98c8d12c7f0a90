// Package constraintsolver builds and runs the finite-domain constraint
// model on top of gokanlogic's minikanren package, then scores every
// hard-feasible assignment it finds with the application layer's weighted
// objective to pick a winner.
//
// A native branch-and-bound search over a composite objective variable is
// one option; this package instead enumerates the feasible region and
// scores it in ordinary code, since only the resulting ordering of
// objectives matters. The objective's arrival-priority term needs to know,
// per candidate solution, which schedulable landed on a patient's arrival
// cell — an Element-style lookup that is far simpler to express in Go than
// to wire through the constraint library's propagators.
package constraintsolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	mk "github.com/gitrdm/gokanlogic/pkg/minikanren"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

// MaxEnumeratedSolutions bounds how many hard-feasible assignments are
// collected before the search gives up trying to prove optimality. At
// typical scale (a handful of patients, a handful of units, a few dozen
// cells) this is generous; for larger instances it degrades gracefully to
// a FEASIBLE, not-proven-optimal result rather than an unbounded search.
const MaxEnumeratedSolutions = 20_000

// Solve builds the constraint model for in and searches for the
// minimum-objective hard-feasible assignment within in.TimeLimitMs.
//
// On success it returns a non-nil assignment with StatusOptimal (the
// search exhausted the feasible region) or StatusFeasible (a solution cap
// or deadline cut the search short). On a well-formed but unsatisfiable
// instance it returns (nil, StatusInfeasible, nil). Any other outcome is
// reported as an error wrapping domain.ErrTimeout, domain.ErrCancelled, or
// domain.ErrInternal.
func Solve(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
	if in.TimeLimitMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(in.TimeLimitMs)*time.Millisecond)
		defer cancel()
	}

	model := mk.NewModel()
	h := in.Horizon()

	starts := make([]*mk.FDVariable, len(in.Visits))
	for i, v := range in.Visits {
		if v.MinStart > v.MaxStart {
			// No cell satisfies both the patient's arrival and the horizon:
			// proven infeasible without ever invoking the search.
			return nil, domain.StatusInfeasible, nil
		}
		values := make([]int, 0, v.MaxStart-v.MinStart+1)
		for cell := v.MinStart; cell <= v.MaxStart; cell++ {
			values = append(values, cell+1) // gokanlogic domains are 1-indexed
		}
		name := fmt.Sprintf("start_p%d_s%d", v.PatientIndex, v.SchedulableIndex)
		starts[i] = model.NewVariableWithName(mk.NewBitSetDomainFromValues(h, values), name)
	}

	if err := postNoOverlapConstraints(model, in, starts); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	if err := postCapacityConstraints(model, in, starts); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	if err := model.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	solver := mk.NewSolver(model)
	solutions, err := solver.Solve(ctx, MaxEnumeratedSolutions)
	return chooseBest(in, solutions, err)
}

func postNoOverlapConstraints(model *mk.Model, in *domain.Instance, starts []*mk.FDVariable) error {
	for pi := range in.Patients {
		visits := in.VisitsFor(pi)
		if len(visits) == 0 {
			continue
		}
		patientStarts := make([]*mk.FDVariable, len(visits))
		durations := make([]int, len(visits))
		for j, vi := range visits {
			patientStarts[j] = starts[vi]
			durations[j] = in.Visits[vi].DurationCells
		}
		c, err := mk.NewNoOverlap(patientStarts, durations)
		if err != nil {
			return fmt.Errorf("patient %d no-overlap: %w", pi, err)
		}
		model.AddConstraint(c)
	}
	return nil
}

func postCapacityConstraints(model *mk.Model, in *domain.Instance, starts []*mk.FDVariable) error {
	for si, s := range in.Schedulables {
		visits := in.VisitsOf(si)
		if len(visits) == 0 {
			continue
		}
		schedulableStarts := make([]*mk.FDVariable, len(visits))
		durations := make([]int, len(visits))
		demands := make([]int, len(visits))
		for j, vi := range visits {
			schedulableStarts[j] = starts[vi]
			durations[j] = in.Visits[vi].DurationCells
			demands[j] = 1
		}
		c, err := mk.NewCumulative(schedulableStarts, durations, demands, s.Capacity)
		if err != nil {
			return fmt.Errorf("schedulable %q capacity: %w", s.ID, err)
		}
		model.AddConstraint(c)
	}
	return nil
}

func chooseBest(in *domain.Instance, solutions [][]int, searchErr error) (*domain.Assignment, domain.Status, error) {
	if searchErr != nil {
		switch {
		case errors.Is(searchErr, context.DeadlineExceeded):
			if len(solutions) == 0 {
				return nil, "", fmt.Errorf("%w: no feasible solution found before the time limit", domain.ErrTimeout)
			}
			return bestOf(in, solutions), domain.StatusFeasible, nil
		case errors.Is(searchErr, context.Canceled):
			if len(solutions) == 0 {
				return nil, "", fmt.Errorf("%w", domain.ErrCancelled)
			}
			return bestOf(in, solutions), domain.StatusFeasible, nil
		default:
			return nil, "", fmt.Errorf("%w: %v", domain.ErrInternal, searchErr)
		}
	}

	if len(solutions) == 0 {
		return nil, domain.StatusInfeasible, nil
	}

	status := domain.StatusOptimal
	if len(solutions) >= MaxEnumeratedSolutions {
		status = domain.StatusFeasible
	}
	return bestOf(in, solutions), status, nil
}

func bestOf(in *domain.Instance, solutions [][]int) *domain.Assignment {
	best := decode(solutions[0])
	bestScore := application.Score(in, *best).Total
	for _, raw := range solutions[1:] {
		candidate := decode(raw)
		if score := application.Score(in, *candidate).Total; score < bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}

func decode(raw []int) *domain.Assignment {
	start := make([]int, len(raw))
	for i, value := range raw {
		start[i] = value - 1 // back to 0-based cells
	}
	return &domain.Assignment{Start: start}
}
