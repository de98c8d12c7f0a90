package application_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilgorjn/patient-scheduling/internal/grid"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

func TestProject_OrdersSlotsByPatientThenStartCell(t *testing.T) {
	g, err := grid.New([]string{"8:00", "8:30", "9:00", "9:30"})
	require.NoError(t, err)
	in := &domain.Instance{
		Grid:         g,
		Patients:     []domain.Patient{{Name: "A"}, {Name: "B"}},
		Schedulables: []domain.Schedulable{{ID: "U1", DurationCells: 1, Capacity: 1}, {ID: "U2", DurationCells: 1, Capacity: 1}},
		Visits: []domain.Visit{
			{PatientIndex: 0, SchedulableIndex: 1, DurationCells: 1},
			{PatientIndex: 0, SchedulableIndex: 0, DurationCells: 1},
			{PatientIndex: 1, SchedulableIndex: 0, DurationCells: 1},
		},
		Weights: domain.DefaultWeights(),
	}
	a := domain.Assignment{Start: []int{2, 0, 1}}

	result := application.Project(in, a, domain.StatusOptimal)
	require.Len(t, result.Slots, 3)

	assert.Equal(t, "A", result.Slots[0].PatientName)
	assert.Equal(t, "8:00", result.Slots[0].StartLabel)
	assert.Equal(t, "A", result.Slots[1].PatientName)
	assert.Equal(t, "9:00", result.Slots[1].StartLabel)
	assert.Equal(t, "B", result.Slots[2].PatientName)
	assert.True(t, result.HasObjective)
}

func TestErrorResult_ClassifiesByWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("%w: search ran out of time", domain.ErrTimeout)
	res := application.ErrorResult(err)
	assert.Equal(t, domain.StatusError, res.Status)
	assert.Contains(t, res.Message, "timeout")
}

func TestErrorResult_InvalidInputPassesThrough(t *testing.T) {
	err := fmt.Errorf("%w: patients[0]: duplicate patient name \"A\"", domain.ErrInvalidInput)
	res := application.ErrorResult(err)
	assert.Equal(t, domain.StatusError, res.Status)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, err.Error(), res.Message)
}
