// Package fallback composes the constraint solver with the greedy
// heuristic: if the constraint search fails internally (library error,
// not a business outcome), the greedy scheduler gets one attempt before
// the error is surfaced.
package fallback

import (
	"context"
	"errors"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/infrastructure/heuristic"
)

// WithGreedyFallback wraps primary so that an ErrInternal outcome triggers
// one greedy-scheduling attempt. A successful fallback is reported as
// StatusFeasible, since the heuristic makes no optimality claim; if the
// heuristic also fails to place every visit, the original error from
// primary is returned unchanged.
func WithGreedyFallback(primary domain.SolveFunc) domain.SolveFunc {
	return func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		assignment, status, err := primary(ctx, in)
		if err == nil || !errors.Is(err, domain.ErrInternal) {
			return assignment, status, err
		}

		if fallbackAssignment, ok := heuristic.Schedule(in); ok {
			return &fallbackAssignment, domain.StatusFeasible, nil
		}
		return nil, "", err
	}
}
