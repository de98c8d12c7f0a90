// Package commands hosts the single CQRS-style command this core exposes.
package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

// Optimizer is the seam between the handler and the constraint search,
// implemented by infrastructure/breaker wrapping infrastructure/constraintsolver.
type Optimizer interface {
	Solve(ctx context.Context, in *domain.Instance, fn domain.SolveFunc) (*domain.Assignment, domain.Status, error)
}

// ResultCache is the seam between the handler and the optional cache layer.
type ResultCache interface {
	Get(ctx context.Context, req application.SolveRequest) (application.SolveResponse, bool, error)
	Set(ctx context.Context, req application.SolveRequest, resp application.SolveResponse) error
}

// SolveScheduleCommand carries one solve request through the handler.
type SolveScheduleCommand struct {
	Request   application.SolveRequest
	RequestID string
}

// SolveScheduleHandler is the one command this core exposes: normalize,
// solve (through the breaker and optional cache), project, log.
type SolveScheduleHandler struct {
	solve    domain.SolveFunc
	breaker  Optimizer
	cache    ResultCache
	logger   *slog.Logger
	defaults application.Defaults
}

// NewSolveScheduleHandler constructs a handler. A nil logger defaults to
// slog.Default(), matching the corpus's command-handler convention.
// defaults seeds options a request omits; pass application.DefaultDefaults()
// to use the package's built-in values.
func NewSolveScheduleHandler(solve domain.SolveFunc, breaker Optimizer, cache ResultCache, logger *slog.Logger, defaults application.Defaults) *SolveScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SolveScheduleHandler{solve: solve, breaker: breaker, cache: cache, logger: logger, defaults: defaults}
}

// Handle runs one solve end to end and returns the wire response shape.
func (h *SolveScheduleHandler) Handle(ctx context.Context, cmd SolveScheduleCommand) (application.SolveResponse, error) {
	start := time.Now()
	requestID := cmd.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if cached, hit, err := h.cache.Get(ctx, cmd.Request); err == nil && hit {
		cached.RequestID = requestID
		cached.SolveTimeMs = time.Since(start).Milliseconds()
		h.logger.Info("solve cache hit", "request_id", requestID, "status", cached.Status)
		return cached, nil
	}

	instance, err := application.NormalizeWithDefaults(cmd.Request, h.defaults)
	if err != nil {
		result := application.ErrorResult(err)
		resp := application.FromResult(result, time.Since(start).Milliseconds(), requestID)
		h.logger.Warn("solve rejected", "request_id", requestID, "error", err)
		return resp, nil
	}

	var result domain.SolveResult
	assignment, status, solveErr := h.breaker.Solve(ctx, instance, h.solve)
	switch {
	case solveErr != nil:
		result = application.ErrorResult(solveErr)
	case status == domain.StatusInfeasible:
		result = domain.SolveResult{Status: domain.StatusInfeasible, Message: "no schedule satisfies the hard constraints"}
	default:
		result = application.Project(instance, *assignment, status)
	}

	resp := application.FromResult(result, time.Since(start).Milliseconds(), requestID)

	if err := h.cache.Set(ctx, cmd.Request, resp); err != nil {
		h.logger.Warn("solve result cache write failed", "request_id", requestID, "error", err)
	}

	h.logger.Info("solve completed",
		"request_id", requestID,
		"status", resp.Status,
		"slots", len(resp.Slots),
		"duration_ms", resp.SolveTimeMs,
	)
	return resp, nil
}
