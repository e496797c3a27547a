package wire

import (
	"exam-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSlot(r chi.Router, slotHandler *adaptor.SlotHandler) {
	// ==================== PUBLIC ROUTES (booking UI) ====================
	// GET /api/slots - filtered listing (date range, text, instructor, status)
	r.Get("/api/slots", slotHandler.ListSlots)

	// GET /api/slots/available - open slots from today onward
	r.Get("/api/slots/available", slotHandler.ListAvailableSlots)

	// GET /api/slots/{id} - slot details
	r.Get("/api/slots/{id}", slotHandler.GetSlot)

	// ==================== ADMIN ROUTES ====================
	// POST /api/admin/slots - create a slot
	r.Post("/api/admin/slots", slotHandler.CreateSlot)

	// POST /api/admin/slots/bulk - batch creation with per-item outcomes
	r.Post("/api/admin/slots/bulk", slotHandler.BulkCreateSlots)

	// PUT /api/admin/slots/{id} - partial update (capacity/price/notes/instructor/status)
	r.Put("/api/admin/slots/{id}", slotHandler.UpdateSlot)

	// DELETE /api/admin/slots/{id}?cascade= - delete, cascade purges bookings
	r.Delete("/api/admin/slots/{id}", slotHandler.DeleteSlot)
}
