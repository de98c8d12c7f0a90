package domain

import "errors"

// Sentinel errors for the abstract error kinds of the solve contract.
// Application-layer code wraps these with fmt.Errorf("...: %w", ErrX) so
// callers can classify a failure with errors.Is without string matching.
var (
	// ErrInvalidInput marks a request that fails structural validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInfeasiblePin marks a pin that is ill-formed with respect to the
	// horizon, the patient's arrival, or another pin.
	ErrInfeasiblePin = errors.New("infeasible pin")

	// ErrTimeout marks a search that exhausted its wall-clock budget before
	// finding any feasible solution.
	ErrTimeout = errors.New("timeout")

	// ErrCancelled marks a search aborted by the caller before finding any
	// feasible solution.
	ErrCancelled = errors.New("cancelled")

	// ErrInternal marks a constraint-library failure unrelated to the input.
	ErrInternal = errors.New("internal error")
)
