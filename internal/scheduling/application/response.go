package application

import "github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"

// SolveResponse is the external solve-boundary response shape.
type SolveResponse struct {
	Status      domain.Status  `json:"status"`
	Slots       []SlotResponse `json:"slots"`
	SolveTimeMs int64          `json:"solve_time_ms"`
	Message     string         `json:"message,omitempty"`
	Objective   *int           `json:"objective,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
}

// SlotResponse is one placed-visit record.
type SlotResponse struct {
	PatientName   string `json:"patient_name"`
	TimeSlot      string `json:"time_slot"`
	SchedulableID string `json:"schedulable_id"`
	Pinned        bool   `json:"pinned"`
}

// FromResult projects a domain.SolveResult into the wire response shape.
func FromResult(res domain.SolveResult, solveTimeMs int64, requestID string) SolveResponse {
	resp := SolveResponse{
		Status:      res.Status,
		SolveTimeMs: solveTimeMs,
		Message:     res.Message,
		RequestID:   requestID,
	}
	if res.HasObjective {
		obj := res.Objective
		resp.Objective = &obj
	}
	resp.Slots = make([]SlotResponse, 0, len(res.Slots))
	for _, s := range res.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			PatientName:   s.PatientName,
			TimeSlot:      s.StartLabel,
			SchedulableID: s.SchedulableID,
			Pinned:        s.Pinned,
		})
	}
	return resp
}
