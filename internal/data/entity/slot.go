package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusFull      SlotStatus = "full"
	SlotStatusCancelled SlotStatus = "cancelled"
	SlotStatusCompleted SlotStatus = "completed"
)

// Slot is a bookable exam session with fixed capacity.
// Status is derived from booked_count vs capacity unless an operator
// forced it into a terminal state.
type Slot struct {
	Base
	SlotDate     time.Time  `db:"slot_date"`
	StartTime    string     `db:"start_time"`
	EndTime      string     `db:"end_time"`
	Location     string     `db:"location"`
	TestType     string     `db:"test_type"`
	InstructorID *uuid.UUID `db:"instructor_id"`
	Capacity     int        `db:"capacity"`
	BookedCount  int        `db:"booked_count"`
	Status       SlotStatus `db:"status"`
	Price        float64    `db:"price"`
	Notes        string     `db:"notes"`
	CancelReason string     `db:"cancel_reason"`
	Recurrence   string     `db:"recurrence"`
}

// IsTerminal reports whether the slot accepts no further booking operations
func (s *Slot) IsTerminal() bool {
	return s.Status == SlotStatusCancelled || s.Status == SlotStatusCompleted
}

// DeriveAvailability recomputes status from booked_count vs capacity.
// Terminal statuses are never overwritten.
func (s *Slot) DeriveAvailability() {
	if s.IsTerminal() {
		return
	}
	if s.BookedCount >= s.Capacity {
		s.Status = SlotStatusFull
	} else {
		s.Status = SlotStatusAvailable
	}
}

// ForceCancel moves the slot into the cancelled terminal state.
// Returns false if the slot is already terminal.
func (s *Slot) ForceCancel(reason string) bool {
	if s.IsTerminal() {
		return false
	}
	s.Status = SlotStatusCancelled
	s.CancelReason = reason
	return true
}

// ForceComplete moves the slot into the completed terminal state.
// Returns false if the slot is already terminal.
func (s *Slot) ForceComplete() bool {
	if s.IsTerminal() {
		return false
	}
	s.Status = SlotStatusCompleted
	return true
}

// UtilizationRate is booked over capacity as a fraction, 0 when capacity
// is not positive. Shared by the stats aggregates and per-slot reports.
func UtilizationRate(booked, capacity int64) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(booked) / float64(capacity)
}
