package response

import (
	"time"

	"exam-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	SlotID    string               `json:"slot_id"`
	WorkerID  string               `json:"worker_id"`
	Status    entity.BookingStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// BookSlotResponse returns the new booking together with the updated slot
// so callers see the post-booking count and status
type BookSlotResponse struct {
	Booking BookingResponse `json:"booking"`
	Slot    SlotResponse    `json:"slot"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        booking.ID.String(),
		SlotID:    booking.SlotID.String(),
		WorkerID:  booking.WorkerID.String(),
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt,
	}
}
