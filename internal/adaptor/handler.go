package adaptor

import (
	"errors"
	"net/http"

	"exam-booking/internal/data/entity"
	"exam-booking/internal/usecase"
	"exam-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Slot    *SlotHandler
	Booking *BookingHandler
	Stats   *StatsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Slot:    NewSlotHandler(service.Slot, log),
		Booking: NewBookingHandler(service.Booking, log),
		Stats:   NewStatsHandler(service.Stats, log),
	}
}

// handleServiceError maps the domain error taxonomy to HTTP responses.
// Capacity and status failures keep their descriptive messages so callers
// see why a booking was rejected (full vs cancelled vs completed).
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrSlotNotFound), errors.Is(err, entity.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrSlotFull),
		errors.Is(err, entity.ErrSlotNotBookable),
		errors.Is(err, entity.ErrInvalidTransition):
		log.Warn(operation+" failed - slot state", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, entity.ErrCapacityViolation), errors.Is(err, entity.ErrSlotHasBookings):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrStoreUnavailable):
		log.Error(operation+" failed - store unreachable", zap.Error(err))
		utils.ResponseUnavailable(w, "Service temporarily unavailable, retry later")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
