package domain

import "context"

// SolveFunc is the shape of a constraint search: given a normalized
// instance, produce a winning assignment and status, or an error wrapping
// one of ErrTimeout, ErrCancelled, ErrInternal. Shared between the
// optimizer implementation and the breaker/handler that call it so both
// sides name the exact same function type.
type SolveFunc func(ctx context.Context, in *Instance) (*Assignment, Status, error)
