package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// Booking is one confirmed capacity unit inside a slot. Its existence is
// what booked_count counts; cancellation deletes the row.
type Booking struct {
	BaseSimple
	SlotID   uuid.UUID     `db:"slot_id"`
	WorkerID uuid.UUID     `db:"worker_id"`
	Status   BookingStatus `db:"status"`
}
