package domain

// Assignment is a candidate schedule: one start cell per visit, indexed the
// same way as Instance.Visits. It is the currency both the constraint
// solver and the greedy fallback scheduler deal in; the objective scorer
// and the result projector both consume it.
type Assignment struct {
	Start []int // Start[i] is the start cell of Instance.Visits[i]
}

// End returns the end cell (exclusive) of visit i under this assignment.
func (a Assignment) End(in *Instance, i int) int {
	return a.Start[i] + in.Visits[i].DurationCells
}

// PlacedVisit is one row of the solve response: a materialized, placed
// (patient, schedulable) interval.
type PlacedVisit struct {
	PatientName   string
	StartCell     int
	StartLabel    string
	SchedulableID string
	Pinned        bool
}

// SolveResult is the fully resolved outcome of one solve: status, the
// placed visits (empty unless OPTIMAL/FEASIBLE), their objective value,
// and a diagnostic message (mandatory for INFEASIBLE/ERROR).
type SolveResult struct {
	Status       Status
	Slots        []PlacedVisit
	Objective    int
	HasObjective bool
	Message      string
}
