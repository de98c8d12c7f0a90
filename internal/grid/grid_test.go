package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilgorjn/patient-scheduling/internal/grid"
)

func TestNew_ValidUniformGrid(t *testing.T) {
	g, err := grid.New([]string{"8:00", "8:30", "9:00", "9:30"})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Horizon())

	cell, ok := g.Cell("9:00")
	require.True(t, ok)
	assert.Equal(t, 2, cell)
	assert.Equal(t, "9:00", g.Label(2))
}

func TestNew_RejectsTooFewSlots(t *testing.T) {
	_, err := grid.New([]string{"8:00"})
	require.Error(t, err)
}

func TestNew_RejectsTooManySlots(t *testing.T) {
	labels := make([]string, grid.MaxCells+1)
	t0 := 0
	for i := range labels {
		labels[i] = minutesToLabel(t0)
		t0 += 5
	}
	_, err := grid.New(labels)
	require.Error(t, err)
}

func TestNew_RejectsDuplicateLabels(t *testing.T) {
	_, err := grid.New([]string{"8:00", "8:30", "8:30"})
	require.Error(t, err)
}

func TestNew_RejectsOutOfOrderLabels(t *testing.T) {
	_, err := grid.New([]string{"8:30", "8:00", "9:00"})
	require.Error(t, err)
}

func TestNew_RejectsNonUniformSpacing(t *testing.T) {
	_, err := grid.New([]string{"8:00", "8:30", "9:15"})
	require.Error(t, err)
}

func TestNew_RejectsInvalidLabel(t *testing.T) {
	_, err := grid.New([]string{"8:00", "not-a-time"})
	require.Error(t, err)
}

func TestNew_AcceptsExactlyTwoSlots(t *testing.T) {
	g, err := grid.New([]string{"8:00", "8:15"})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Horizon())
}

func TestCell_UnknownLabel(t *testing.T) {
	g, err := grid.New([]string{"8:00", "8:30"})
	require.NoError(t, err)
	_, ok := g.Cell("10:00")
	assert.False(t, ok)
}

func TestLabel_PanicsOutOfRange(t *testing.T) {
	g, err := grid.New([]string{"8:00", "8:30"})
	require.NoError(t, err)
	assert.Panics(t, func() { g.Label(5) })
}

func TestDurationCells_RoundsUp(t *testing.T) {
	g, err := grid.New([]string{"8:00", "8:30", "9:00"}) // 30-minute cells
	require.NoError(t, err)

	assert.Equal(t, 1, g.DurationCells(1))
	assert.Equal(t, 1, g.DurationCells(30))
	assert.Equal(t, 2, g.DurationCells(31))
	assert.Equal(t, 2, g.DurationCells(60))
	assert.Equal(t, 3, g.DurationCells(61))
}

func minutesToLabel(totalMinutes int) string {
	h := totalMinutes / 60
	m := totalMinutes % 60
	digits := "0123456789"
	hh := string(digits[h/10]) + string(digits[h%10])
	mm := string(digits[m/10]) + string(digits[m%10])
	return hh + ":" + mm
}
