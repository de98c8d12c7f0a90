package domain

// Visit is one (patient, schedulable) requirement that the model must place.
//
// A presence variable per visit is unnecessary here: whether a visit is
// mandatory is already known from static data (auto_schedule or an
// explicit pin), so the normalizer only ever emits Visits that must be
// placed. Every Visit the model sees is placed by construction. See
// DESIGN.md for the recorded decision.
type Visit struct {
	PatientIndex     int
	SchedulableIndex int
	DurationCells    int

	// MinStart and MaxStart bound the start cell (inclusive), derived from
	// the patient's arrival and the horizon; a pinned visit has both set to
	// its pinned cell.
	MinStart int
	MaxStart int

	Pinned      bool
	PinnedStart int
}

// Key identifies a visit by its (patient, schedulable) pair.
func (v Visit) Key() VisitKey {
	return VisitKey{PatientIndex: v.PatientIndex, SchedulableIndex: v.SchedulableIndex}
}

// VisitKey is a comparable identity for a visit, used for pin lookups and
// duplicate-pin detection.
type VisitKey struct {
	PatientIndex     int
	SchedulableIndex int
}
