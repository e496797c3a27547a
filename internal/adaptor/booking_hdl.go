package adaptor

import (
	"encoding/json"
	"net/http"

	"exam-booking/internal/dto/request"
	"exam-booking/internal/usecase"
	"exam-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// BookSlot handles POST /api/slots/{id}/book
func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	var req request.BookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.BookSlot(r.Context(), slotID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "book slot")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// CancelBooking handles DELETE /api/slots/{id}/bookings/{bookingID}
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	bookingID := chi.URLParam(r, "bookingID")
	if slotID == "" || bookingID == "" {
		utils.ResponseBadRequest(w, "Slot ID and booking ID are required", nil)
		return
	}

	slot, err := h.service.CancelBooking(r.Context(), slotID, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// ListWorkerBookings handles GET /api/workers/{workerID}/bookings
func (h *BookingHandler) ListWorkerBookings(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		utils.ResponseBadRequest(w, "Worker ID is required", nil)
		return
	}

	bookings, err := h.service.ListWorkerBookings(r.Context(), workerID)
	if err != nil {
		handleServiceError(h.log, w, err, "list worker bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CancelSlot handles PUT /api/admin/slots/{id}/cancel
func (h *BookingHandler) CancelSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	var req request.CancelSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CancelSlot(r.Context(), slotID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "cancel slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// CompleteSlot handles PUT /api/admin/slots/{id}/complete
func (h *BookingHandler) CompleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	slot, err := h.service.CompleteSlot(r.Context(), slotID)
	if err != nil {
		handleServiceError(h.log, w, err, "complete slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// ListSlotBookings handles GET /api/admin/slots/{id}/bookings
func (h *BookingHandler) ListSlotBookings(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	bookings, err := h.service.ListSlotBookings(r.Context(), slotID)
	if err != nil {
		handleServiceError(h.log, w, err, "list slot bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
