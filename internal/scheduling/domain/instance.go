package domain

import "github.com/kilgorjn/patient-scheduling/internal/grid"

// Instance is the fully normalized problem the constraint model is built
// from: visits refer to patients and schedulables by integer index and to
// time by cell index rather than by name or label. It is owned
// exclusively by one solve and is never mutated after the normalizer
// returns it.
type Instance struct {
	Grid         *grid.TimeGrid
	Patients     []Patient
	Schedulables []Schedulable
	Visits       []Visit
	Weights      Weights
	Seed         int64
	TimeLimitMs  int
}

// Horizon is a convenience accessor for the grid's cell count, H.
func (in *Instance) Horizon() int { return in.Grid.Horizon() }

// VisitsFor returns the indices into Visits belonging to a given patient,
// in the order the normalizer created them (schedulable order).
func (in *Instance) VisitsFor(patientIndex int) []int {
	var out []int
	for i, v := range in.Visits {
		if v.PatientIndex == patientIndex {
			out = append(out, i)
		}
	}
	return out
}

// VisitsOf returns the indices into Visits referencing a given schedulable.
func (in *Instance) VisitsOf(schedulableIndex int) []int {
	var out []int
	for i, v := range in.Visits {
		if v.SchedulableIndex == schedulableIndex {
			out = append(out, i)
		}
	}
	return out
}
