package wire

import (
	"exam-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== PUBLIC ROUTES (booking UI) ====================
	// POST /api/slots/{id}/book - claim one capacity unit
	r.Post("/api/slots/{id}/book", bookingHandler.BookSlot)

	// DELETE /api/slots/{id}/bookings/{bookingID} - release a booking
	r.Delete("/api/slots/{id}/bookings/{bookingID}", bookingHandler.CancelBooking)

	// GET /api/workers/{workerID}/bookings - all bookings one worker holds
	r.Get("/api/workers/{workerID}/bookings", bookingHandler.ListWorkerBookings)

	// ==================== ADMIN ROUTES ====================
	// PUT /api/admin/slots/{id}/cancel - force cancelled (terminal)
	r.Put("/api/admin/slots/{id}/cancel", bookingHandler.CancelSlot)

	// PUT /api/admin/slots/{id}/complete - force completed (terminal)
	r.Put("/api/admin/slots/{id}/complete", bookingHandler.CompleteSlot)

	// GET /api/admin/slots/{id}/bookings - bookings of one slot
	r.Get("/api/admin/slots/{id}/bookings", bookingHandler.ListSlotBookings)
}
