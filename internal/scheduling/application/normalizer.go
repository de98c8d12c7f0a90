package application

import (
	"fmt"

	"github.com/kilgorjn/patient-scheduling/internal/grid"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
)

const maxTimeLimitMs = 60_000

// Defaults carries the process-level fallback values applied when a
// request's options omit a field.
type Defaults struct {
	Weights     domain.Weights
	Seed        int64
	TimeLimitMs int
}

// DefaultDefaults returns the built-in fallback values, used when a caller
// has no process-level configuration to supply.
func DefaultDefaults() Defaults {
	return Defaults{Weights: domain.DefaultWeights(), Seed: 42, TimeLimitMs: 10_000}
}

// Normalize validates a SolveRequest and builds the fully-indexed Instance
// the constraint model is built from, falling back to DefaultDefaults for
// any option the request omits.
func Normalize(req SolveRequest) (*domain.Instance, error) {
	return NormalizeWithDefaults(req, DefaultDefaults())
}

// NormalizeWithDefaults is Normalize with caller-supplied process-level
// fallback values, letting a host apply its own configured defaults
// instead of the package's built-in ones.
func NormalizeWithDefaults(req SolveRequest, defaults Defaults) (*domain.Instance, error) {
	g, err := grid.New(req.TimeSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	h := g.Horizon()

	patients, patientIndex, err := normalizePatients(req.Patients, g)
	if err != nil {
		return nil, err
	}

	schedulables, schedulableIndex, err := normalizeSchedulables(req.Schedulables, g)
	if err != nil {
		return nil, err
	}

	pins, err := normalizePins(req.PinnedSlots, g, patients, patientIndex, schedulables, schedulableIndex)
	if err != nil {
		return nil, err
	}
	pinned := make(map[domain.VisitKey]domain.Pin, len(pins))
	for _, p := range pins {
		pinned[domain.VisitKey{PatientIndex: p.PatientIndex, SchedulableIndex: p.SchedulableIndex}] = p
	}

	visits := make([]domain.Visit, 0, len(patients)*len(schedulables))
	for pi := range patients {
		for si, s := range schedulables {
			key := domain.VisitKey{PatientIndex: pi, SchedulableIndex: si}
			pin, isPinned := pinned[key]
			if !isPinned && !s.AutoSchedule {
				continue // optional, unpinned: never placed, no variable needed
			}
			v := domain.Visit{
				PatientIndex:     pi,
				SchedulableIndex: si,
				DurationCells:    s.DurationCells,
				MinStart:         patients[pi].ArrivalCell,
				MaxStart:         h - s.DurationCells,
			}
			if isPinned {
				v.Pinned = true
				v.PinnedStart = pin.StartCell
				v.MinStart = pin.StartCell
				v.MaxStart = pin.StartCell
			}
			visits = append(visits, v)
		}
	}

	weights, seed, timeLimitMs, err := resolveOptions(req.Options, defaults)
	if err != nil {
		return nil, err
	}

	return &domain.Instance{
		Grid:         g,
		Patients:     patients,
		Schedulables: schedulables,
		Visits:       visits,
		Weights:      weights,
		Seed:         seed,
		TimeLimitMs:  timeLimitMs,
	}, nil
}

func normalizePatients(reqs []PatientRequest, g *grid.TimeGrid) ([]domain.Patient, map[string]int, error) {
	patients := make([]domain.Patient, 0, len(reqs))
	index := make(map[string]int, len(reqs))
	for i, pr := range reqs {
		if _, dup := index[pr.Name]; dup {
			return nil, nil, fmt.Errorf("%w: patients[%d]: duplicate patient name %q", domain.ErrInvalidInput, i, pr.Name)
		}
		arrival := 0
		if pr.ArrivalTime != "" {
			cell, ok := g.Cell(pr.ArrivalTime)
			if !ok {
				return nil, nil, fmt.Errorf("%w: patients[%d]: arrival_time %q is not one of time_slots", domain.ErrInvalidInput, i, pr.ArrivalTime)
			}
			arrival = cell
		}
		p, err := domain.NewPatient(pr.Name, arrival)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: patients[%d]: %v", domain.ErrInvalidInput, i, err)
		}
		index[p.Name] = i
		patients = append(patients, p)
	}
	return patients, index, nil
}

func normalizeSchedulables(reqs []SchedulableRequest, g *grid.TimeGrid) ([]domain.Schedulable, map[string]int, error) {
	schedulables := make([]domain.Schedulable, 0, len(reqs))
	index := make(map[string]int, len(reqs))
	for i, sr := range reqs {
		if _, dup := index[sr.ID]; dup {
			return nil, nil, fmt.Errorf("%w: schedulables[%d]: duplicate schedulable id %q", domain.ErrInvalidInput, i, sr.ID)
		}
		if sr.DurationMin < 1 {
			return nil, nil, fmt.Errorf("%w: schedulables[%d]: duration must be >= 1 minute, got %d", domain.ErrInvalidInput, i, sr.DurationMin)
		}
		autoSchedule := true
		if sr.AutoSchedule != nil {
			autoSchedule = *sr.AutoSchedule
		}
		capacity := sr.Capacity
		if capacity == 0 {
			capacity = 1
		}
		durationCells := g.DurationCells(sr.DurationMin)
		s, err := domain.NewSchedulable(sr.ID, sr.Name, durationCells, sr.Priority, autoSchedule, capacity)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: schedulables[%d]: %v", domain.ErrInvalidInput, i, err)
		}
		index[s.ID] = i
		schedulables = append(schedulables, s)
	}
	return schedulables, index, nil
}

func normalizePins(
	reqs []PinRequest,
	g *grid.TimeGrid,
	patients []domain.Patient,
	patientIndex map[string]int,
	schedulables []domain.Schedulable,
	schedulableIndex map[string]int,
) ([]domain.Pin, error) {
	pins := make([]domain.Pin, 0, len(reqs))
	seenPair := make(map[domain.VisitKey]bool, len(reqs))

	for i, pr := range reqs {
		pi, ok := patientIndex[pr.PatientName]
		if !ok {
			return nil, fmt.Errorf("%w: pinned_slots[%d]: unknown patient_name %q", domain.ErrInvalidInput, i, pr.PatientName)
		}
		si, ok := schedulableIndex[pr.SchedulableID]
		if !ok {
			return nil, fmt.Errorf("%w: pinned_slots[%d]: unknown schedulable_id %q", domain.ErrInvalidInput, i, pr.SchedulableID)
		}
		cell, ok := g.Cell(pr.TimeSlot)
		if !ok {
			return nil, fmt.Errorf("%w: pinned_slots[%d]: time_slot %q is not one of time_slots", domain.ErrInvalidInput, i, pr.TimeSlot)
		}

		key := domain.VisitKey{PatientIndex: pi, SchedulableIndex: si}
		if seenPair[key] {
			return nil, fmt.Errorf("%w: pinned_slots[%d]: duplicate pin for patient %q / schedulable %q", domain.ErrInvalidInput, i, pr.PatientName, pr.SchedulableID)
		}
		seenPair[key] = true

		s := schedulables[si]
		if cell+s.DurationCells > g.Horizon() {
			return nil, fmt.Errorf("%w: pinned_slots[%d]: visit would end after the horizon", domain.ErrInfeasiblePin, i)
		}
		if cell < patients[pi].ArrivalCell {
			return nil, fmt.Errorf("%w: pinned_slots[%d]: start precedes patient %q's arrival", domain.ErrInfeasiblePin, i, pr.PatientName)
		}

		newPin := domain.Pin{PatientIndex: pi, SchedulableIndex: si, StartCell: cell}
		for _, existing := range pins {
			if existing.PatientIndex != pi {
				continue
			}
			existingEnd := existing.StartCell + schedulables[existing.SchedulableIndex].DurationCells
			newEnd := cell + s.DurationCells
			if existing.StartCell < newEnd && cell < existingEnd {
				return nil, fmt.Errorf("%w: pinned_slots[%d]: overlaps another pin for patient %q", domain.ErrInfeasiblePin, i, pr.PatientName)
			}
		}

		pins = append(pins, newPin)
	}
	return pins, nil
}

func resolveOptions(opts *Options, defaults Defaults) (domain.Weights, int64, int, error) {
	weights := defaults.Weights
	seed := defaults.Seed
	timeLimitMs := defaults.TimeLimitMs

	if opts == nil {
		return weights, seed, timeLimitMs, nil
	}
	if opts.Weights != nil {
		w := opts.Weights
		if w.Idle != nil {
			weights.Idle = *w.Idle
		}
		if w.Makespan != nil {
			weights.Makespan = *w.Makespan
		}
		if w.Priority != nil {
			weights.Priority = *w.Priority
		}
		if w.ArrivalPriority != nil {
			weights.ArrivalPriority = *w.ArrivalPriority
		}
	}
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	if opts.TimeLimitMs != 0 {
		if opts.TimeLimitMs < 0 {
			return weights, seed, timeLimitMs, fmt.Errorf("%w: options.time_limit_ms must be positive", domain.ErrInvalidInput)
		}
		if opts.TimeLimitMs > maxTimeLimitMs {
			return weights, seed, timeLimitMs, fmt.Errorf("%w: options.time_limit_ms must be <= %d", domain.ErrInvalidInput, maxTimeLimitMs)
		}
		timeLimitMs = opts.TimeLimitMs
	}
	return weights, seed, timeLimitMs, nil
}
