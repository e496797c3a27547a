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

type SlotHandler struct {
	service usecase.SlotService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "slot")),
	}
}

// CreateSlot handles POST /api/admin/slots
func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}

// BulkCreateSlots handles POST /api/admin/slots/bulk
func (h *SlotHandler) BulkCreateSlots(w http.ResponseWriter, r *http.Request) {
	var req request.BulkCreateSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.BulkCreateSlots(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "bulk create slots")
		return
	}

	if result.Failed > 0 {
		utils.ResponseMultiStatus(w, "partial success", result)
		return
	}
	utils.ResponseCreated(w, "success", result)
}

// GetSlot handles GET /api/slots/{id}
func (h *SlotHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	slot, err := h.service.GetSlot(r.Context(), slotID)
	if err != nil {
		handleServiceError(h.log, w, err, "get slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// UpdateSlot handles PUT /api/admin/slots/{id}
func (h *SlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	var req request.UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// DeleteSlot handles DELETE /api/admin/slots/{id}?cascade=
func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	cascade := utils.ParseBool(r.URL.Query().Get("cascade"))

	if err := h.service.DeleteSlot(r.Context(), slotID, cascade); err != nil {
		handleServiceError(h.log, w, err, "delete slot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListSlots handles GET /api/slots
func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	req := h.parseFilter(r)

	slots, err := h.service.ListSlots(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// ListAvailableSlots handles GET /api/slots/available - only slots that
// are still open and not in the past
func (h *SlotHandler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	req := h.parseFilter(r)
	req.AvailableOnly = true
	req.Status = ""

	slots, err := h.service.ListSlots(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list available slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

func (h *SlotHandler) parseFilter(r *http.Request) *request.SlotFilterRequest {
	query := r.URL.Query()
	return &request.SlotFilterRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 20),
		},
		From:          query.Get("from"),
		To:            query.Get("to"),
		Query:         query.Get("q"),
		InstructorID:  query.Get("instructor_id"),
		Status:        query.Get("status"),
		AvailableOnly: utils.ParseBool(query.Get("available_only")),
	}
}
