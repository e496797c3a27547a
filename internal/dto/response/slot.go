package response

import (
	"time"

	"exam-booking/internal/data/entity"
)

type SlotResponse struct {
	ID           string            `json:"id"`
	SlotDate     string            `json:"slot_date"`
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time"`
	Location     string            `json:"location"`
	TestType     string            `json:"test_type"`
	InstructorID *string           `json:"instructor_id,omitempty"`
	Capacity     int               `json:"capacity"`
	BookedCount  int               `json:"booked_count"`
	Status       entity.SlotStatus `json:"status"`
	Price        float64           `json:"price"`
	Notes        string            `json:"notes,omitempty"`
	CancelReason string            `json:"cancel_reason,omitempty"`
	Recurrence   string            `json:"recurrence,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// BulkCreateResult is the per-item outcome of a bulk creation; either Slot
// or Error is set, never both
type BulkCreateResult struct {
	Index int           `json:"index"`
	Slot  *SlotResponse `json:"slot,omitempty"`
	Error string        `json:"error,omitempty"`
}

type BulkCreateSlotsResponse struct {
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
	Results []BulkCreateResult `json:"results"`
}

func SlotToResponse(slot *entity.Slot) *SlotResponse {
	var instructorID *string
	if slot.InstructorID != nil {
		id := slot.InstructorID.String()
		instructorID = &id
	}

	return &SlotResponse{
		ID:           slot.ID.String(),
		SlotDate:     slot.SlotDate.Format("2006-01-02"),
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Location:     slot.Location,
		TestType:     slot.TestType,
		InstructorID: instructorID,
		Capacity:     slot.Capacity,
		BookedCount:  slot.BookedCount,
		Status:       slot.Status,
		Price:        slot.Price,
		Notes:        slot.Notes,
		CancelReason: slot.CancelReason,
		Recurrence:   slot.Recurrence,
		CreatedAt:    slot.CreatedAt,
		UpdatedAt:    slot.UpdatedAt,
	}
}
