// Package grid implements the uniform time-cell quantization the solver
// reasons about: callers speak in wall-clock labels ("8:00"), the solver
// speaks in integer cell indices.
package grid

import (
	"fmt"
	"time"
)

// MinCells and MaxCells bound how large a single horizon may be.
const (
	MinCells = 2
	MaxCells = 192
)

// TimeGrid is an ordered, uniformly-spaced sequence of time labels.
type TimeGrid struct {
	labels   []string
	index    map[string]int
	cellSize time.Duration
}

// New builds a TimeGrid from caller-supplied labels of the form "H:MM" or
// "HH:MM". It rejects duplicate labels, out-of-order labels, and non-uniform
// spacing between consecutive labels.
func New(labels []string) (*TimeGrid, error) {
	if len(labels) < MinCells {
		return nil, fmt.Errorf("time_slots: need at least %d slots, got %d", MinCells, len(labels))
	}
	if len(labels) > MaxCells {
		return nil, fmt.Errorf("time_slots: at most %d slots allowed, got %d", MaxCells, len(labels))
	}

	times := make([]time.Time, len(labels))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		t, err := parseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("time_slots[%d]: %w", i, err)
		}
		if _, dup := index[label]; dup {
			return nil, fmt.Errorf("time_slots[%d]: duplicate label %q", i, label)
		}
		index[label] = i
		times[i] = t
	}

	var step time.Duration
	for i := 1; i < len(times); i++ {
		d := times[i].Sub(times[i-1])
		if d <= 0 {
			return nil, fmt.Errorf("time_slots[%d]: labels must be strictly increasing", i)
		}
		if i == 1 {
			step = d
			continue
		}
		if d != step {
			return nil, fmt.Errorf("time_slots[%d]: non-uniform spacing (expected %s, got %s)", i, step, d)
		}
	}
	if step == 0 {
		// Guard only: the loop above sets step from the first pair, which
		// also covers exactly two slots.
		step = times[1].Sub(times[0])
	}

	out := make([]string, len(labels))
	copy(out, labels)
	return &TimeGrid{labels: out, index: index, cellSize: step}, nil
}

// Horizon is the number of cells, H.
func (g *TimeGrid) Horizon() int { return len(g.labels) }

// CellSize is the wall-clock width of one cell.
func (g *TimeGrid) CellSize() time.Duration { return g.cellSize }

// Cell resolves a label to its cell index.
func (g *TimeGrid) Cell(label string) (int, bool) {
	i, ok := g.index[label]
	return i, ok
}

// Label returns the label for a cell index. Panics on an out-of-range index,
// which indicates a bug in the caller rather than bad input.
func (g *TimeGrid) Label(cell int) string {
	if cell < 0 || cell >= len(g.labels) {
		panic(fmt.Sprintf("grid: cell %d out of range [0,%d)", cell, len(g.labels)))
	}
	return g.labels[cell]
}

// DurationCells converts a duration in minutes to a whole number of cells,
// rounded up, minimum 1.
func (g *TimeGrid) DurationCells(durationMinutes int) int {
	if g.cellSize <= 0 {
		return 1
	}
	cellMinutes := int(g.cellSize / time.Minute)
	if cellMinutes <= 0 {
		cellMinutes = 1
	}
	cells := (durationMinutes + cellMinutes - 1) / cellMinutes
	if cells < 1 {
		cells = 1
	}
	return cells
}

func parseLabel(label string) (time.Time, error) {
	for _, layout := range []string{"15:04", "3:04PM", "3:04pm"} {
		if t, err := time.Parse(layout, label); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time label %q (want H:MM)", label)
}
