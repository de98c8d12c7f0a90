// Package breaker guards the constraint optimizer with a circuit breaker
// so a host process serving many solves back-to-back fails fast once the
// search is repeatedly erroring internally, instead of burning its
// wall-clock budget on a component that is currently broken. It never
// changes what a single solve computes — INFEASIBLE, TIMEOUT, and
// CANCELLED are expected business outcomes of a healthy search and never
// count against the breaker.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

// OptimizerBreaker wraps a domain.SolveFunc with failure-rate tripping.
type OptimizerBreaker struct {
	cb *gobreaker.CircuitBreaker[outcome]
}

type outcome struct {
	assignment  *domain.Assignment
	status      domain.Status
	businessErr error
}

// New creates a breaker that opens after consecutiveFailures consecutive
// internal failures and stays open for openDuration before allowing a
// trial request through.
func New(consecutiveFailures int, openDuration time.Duration) *OptimizerBreaker {
	settings := gobreaker.Settings{
		Name:    "constraint-optimizer",
		Timeout: openDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(consecutiveFailures)
		},
	}
	return &OptimizerBreaker{cb: gobreaker.NewCircuitBreaker[outcome](settings)}
}

// Solve invokes fn through the breaker. domain.ErrInternal outcomes count
// as failures; domain.ErrTimeout, domain.ErrCancelled, and INFEASIBLE do not.
func (b *OptimizerBreaker) Solve(ctx context.Context, in *domain.Instance, fn domain.SolveFunc) (*domain.Assignment, domain.Status, error) {
	result, err := b.cb.Execute(func() (outcome, error) {
		assignment, status, solveErr := fn(ctx, in)
		if solveErr != nil && errors.Is(solveErr, domain.ErrInternal) {
			return outcome{}, solveErr
		}
		return outcome{assignment: assignment, status: status, businessErr: solveErr}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, "", fmt.Errorf("%w: optimizer circuit breaker open: %v", domain.ErrInternal, err)
		}
		return nil, "", err
	}
	if result.businessErr != nil {
		return nil, "", result.businessErr
	}
	return result.assignment, result.status, nil
}
