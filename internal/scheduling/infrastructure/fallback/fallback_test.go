package fallback_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/infrastructure/fallback"
)

func TestWithGreedyFallback_PassesThroughNonInternalOutcomes(t *testing.T) {
	primary := func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		return nil, domain.StatusInfeasible, nil
	}
	fn := fallback.WithGreedyFallback(primary)

	_, status, err := fn(context.Background(), &domain.Instance{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInfeasible, status)
}

func TestWithGreedyFallback_RecoversFromInternalError(t *testing.T) {
	primary := func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		return nil, "", fmt.Errorf("%w: library panic", domain.ErrInternal)
	}
	fn := fallback.WithGreedyFallback(primary)

	in := &domain.Instance{
		Patients:     []domain.Patient{{Name: "A", ArrivalCell: 0}},
		Schedulables: []domain.Schedulable{{ID: "U1", DurationCells: 1, Capacity: 1}},
		Visits: []domain.Visit{
			{PatientIndex: 0, SchedulableIndex: 0, DurationCells: 1, MinStart: 0, MaxStart: 2},
		},
	}

	assignment, status, err := fn(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFeasible, status)
	require.NotNil(t, assignment)
	assert.Len(t, assignment.Start, 1)
}

func TestWithGreedyFallback_SurfacesOriginalErrorWhenHeuristicAlsoFails(t *testing.T) {
	wantErr := fmt.Errorf("%w: library panic", domain.ErrInternal)
	primary := func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		return nil, "", wantErr
	}
	fn := fallback.WithGreedyFallback(primary)

	in := &domain.Instance{
		Patients:     []domain.Patient{{Name: "A", ArrivalCell: 0}},
		Schedulables: []domain.Schedulable{{ID: "U1", DurationCells: 1, Capacity: 1}},
		Visits: []domain.Visit{
			{PatientIndex: 0, SchedulableIndex: 0, DurationCells: 1, MinStart: 0, MaxStart: 0},
			{PatientIndex: 0, SchedulableIndex: 0, DurationCells: 1, MinStart: 0, MaxStart: 0},
		},
	}

	_, _, err := fn(context.Background(), in)
	assert.Equal(t, wantErr, err)
}
