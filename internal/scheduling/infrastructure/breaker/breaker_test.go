package breaker_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/infrastructure/breaker"
)

func TestSolve_PassesThroughSuccessfulResult(t *testing.T) {
	b := breaker.New(3, 30*time.Second)
	want := &domain.Assignment{Start: []int{1, 2}}

	fn := func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		return want, domain.StatusOptimal, nil
	}

	got, status, err := b.Solve(context.Background(), &domain.Instance{}, fn)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, domain.StatusOptimal, status)
}

func TestSolve_InfeasibleIsNotABreakerFailure(t *testing.T) {
	b := breaker.New(3, 30*time.Second)
	fn := func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		return nil, domain.StatusInfeasible, nil
	}

	for i := 0; i < 10; i++ {
		_, status, err := b.Solve(context.Background(), &domain.Instance{}, fn)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInfeasible, status)
	}
}

func TestSolve_TimeoutIsNotABreakerFailure(t *testing.T) {
	b := breaker.New(3, 30*time.Second)
	fn := func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		return nil, "", fmt.Errorf("%w: ran out of time", domain.ErrTimeout)
	}

	for i := 0; i < 10; i++ {
		_, _, err := b.Solve(context.Background(), &domain.Instance{}, fn)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrTimeout))
	}
}

func TestSolve_ConsecutiveInternalFailuresOpenTheCircuit(t *testing.T) {
	b := breaker.New(3, 30*time.Second)
	fn := func(ctx context.Context, in *domain.Instance) (*domain.Assignment, domain.Status, error) {
		return nil, "", fmt.Errorf("%w: library panic", domain.ErrInternal)
	}

	var lastErr error
	for i := 0; i < 5; i++ {
		_, _, lastErr = b.Solve(context.Background(), &domain.Instance{}, fn)
	}
	require.Error(t, lastErr)
	assert.True(t, errors.Is(lastErr, domain.ErrInternal))
	assert.Contains(t, lastErr.Error(), "circuit breaker open")
}
