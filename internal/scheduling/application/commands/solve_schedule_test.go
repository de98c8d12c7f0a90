package commands_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application/commands"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

type fakeOptimizer struct {
	assignment *domain.Assignment
	status     domain.Status
	err        error
}

func (f fakeOptimizer) Solve(ctx context.Context, in *domain.Instance, fn domain.SolveFunc) (*domain.Assignment, domain.Status, error) {
	return f.assignment, f.status, f.err
}

type fakeCache struct {
	hit  bool
	resp application.SolveResponse
	sets int
}

func (f *fakeCache) Get(ctx context.Context, req application.SolveRequest) (application.SolveResponse, bool, error) {
	return f.resp, f.hit, nil
}

func (f *fakeCache) Set(ctx context.Context, req application.SolveRequest, resp application.SolveResponse) error {
	f.sets++
	f.resp = resp
	return nil
}

func validRequest() application.SolveRequest {
	return application.SolveRequest{
		TimeSlots:    []string{"8:00", "8:30", "9:00"},
		Patients:     []application.PatientRequest{{Name: "A", ArrivalTime: "8:00"}},
		Schedulables: []application.SchedulableRequest{{ID: "U", Name: "Unit", DurationMin: 30}},
	}
}

func noopSolve(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
	return nil, "", nil
}

func TestHandle_ReturnsCachedResponseOnHit(t *testing.T) {
	cache := &fakeCache{hit: true, resp: application.SolveResponse{Status: domain.StatusOptimal}}
	handler := commands.NewSolveScheduleHandler(noopSolve, fakeOptimizer{}, cache, nil, application.DefaultDefaults())

	resp, err := handler.Handle(context.Background(), commands.SolveScheduleCommand{Request: validRequest()})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOptimal, resp.Status)
	assert.NotEmpty(t, resp.RequestID)
}

func TestHandle_RejectsInvalidRequestWithoutCallingOptimizer(t *testing.T) {
	cache := &fakeCache{}
	optimizer := fakeOptimizer{err: fmt.Errorf("should not be called")}
	handler := commands.NewSolveScheduleHandler(noopSolve, optimizer, cache, nil, application.DefaultDefaults())

	req := validRequest()
	req.Patients = append(req.Patients, application.PatientRequest{Name: "A"}) // duplicate name

	resp, err := handler.Handle(context.Background(), commands.SolveScheduleCommand{Request: req})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, resp.Status)
	assert.Equal(t, 0, cache.sets)
}

func TestHandle_ProjectsSuccessfulSolve(t *testing.T) {
	optimizer := fakeOptimizer{
		assignment: &domain.Assignment{Start: []int{0}},
		status:     domain.StatusOptimal,
	}
	cache := &fakeCache{}
	handler := commands.NewSolveScheduleHandler(noopSolve, optimizer, cache, nil, application.DefaultDefaults())

	resp, err := handler.Handle(context.Background(), commands.SolveScheduleCommand{Request: validRequest()})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOptimal, resp.Status)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "A", resp.Slots[0].PatientName)
	assert.Equal(t, 1, cache.sets)
}

func TestHandle_InfeasibleProducesNoSlotsNoObjective(t *testing.T) {
	optimizer := fakeOptimizer{status: domain.StatusInfeasible}
	cache := &fakeCache{}
	handler := commands.NewSolveScheduleHandler(noopSolve, optimizer, cache, nil, application.DefaultDefaults())

	resp, err := handler.Handle(context.Background(), commands.SolveScheduleCommand{Request: validRequest()})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInfeasible, resp.Status)
	assert.Empty(t, resp.Slots)
	assert.Nil(t, resp.Objective)
	assert.NotEmpty(t, resp.Message)
}

func TestHandle_OptimizerErrorSurfacesAsError(t *testing.T) {
	optimizer := fakeOptimizer{err: fmt.Errorf("%w: boom", domain.ErrInternal)}
	cache := &fakeCache{}
	handler := commands.NewSolveScheduleHandler(noopSolve, optimizer, cache, nil, application.DefaultDefaults())

	resp, err := handler.Handle(context.Background(), commands.SolveScheduleCommand{Request: validRequest()})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, resp.Status)
	assert.Contains(t, resp.Message, "internal")
}
