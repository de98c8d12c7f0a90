package domain

// Weights scales the four soft-objective terms. Recommended
// defaults make idle time dominate, makespan break idle ties, and priority
// terms enter only when the schedule is otherwise indifferent.
type Weights struct {
	Idle            int
	Makespan        int
	Priority        int
	ArrivalPriority int
}

// DefaultWeights returns the recommended (1000, 10, 100, 50) scaling.
func DefaultWeights() Weights {
	return Weights{Idle: 1000, Makespan: 10, Priority: 100, ArrivalPriority: 50}
}
