package usecase

import (
	"context"
	"fmt"

	"exam-booking/internal/data/entity"
	"exam-booking/internal/data/repository"
	"exam-booking/internal/dto/request"
	"exam-booking/internal/dto/response"
	"exam-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints (booking UI)
	BookSlot(ctx context.Context, slotID string, req *request.BookSlotRequest) (*response.BookSlotResponse, error)
	CancelBooking(ctx context.Context, slotID, bookingID string) (*response.SlotResponse, error)
	ListWorkerBookings(ctx context.Context, workerID string) ([]response.BookingResponse, error)

	// Admin endpoints
	CancelSlot(ctx context.Context, slotID string, req *request.CancelSlotRequest) (*response.SlotResponse, error)
	CompleteSlot(ctx context.Context, slotID string) (*response.SlotResponse, error)
	ListSlotBookings(ctx context.Context, slotID string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// BookSlot claims one capacity unit. The repository performs the
// check-then-increment as a single conditional update, so under concurrent
// callers at most capacity bookings ever succeed.
func (s *bookingService) BookSlot(ctx context.Context, slotID string, req *request.BookSlotRequest) (*response.BookSlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid worker ID format %s", entity.ErrValidation, req.WorkerID)
	}

	slot, booking, err := s.repo.Booking.Book(ctx, id, workerID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking confirmed",
		zap.String("slot_id", slotID),
		zap.String("booking_id", booking.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.Int("booked_count", slot.BookedCount),
		zap.Int("capacity", slot.Capacity),
		zap.String("status", string(slot.Status)),
	)

	return &response.BookSlotResponse{
		Booking: response.BookingToResponse(booking),
		Slot:    *response.SlotToResponse(slot),
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, slotID, bookingID string) (*response.SlotResponse, error) {
	slotUUID, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID format %s", entity.ErrValidation, bookingID)
	}

	slot, err := s.repo.Booking.Cancel(ctx, slotUUID, bookingUUID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("slot_id", slotID),
		zap.String("booking_id", bookingID),
		zap.Int("booked_count", slot.BookedCount),
		zap.String("status", string(slot.Status)),
	)

	return response.SlotToResponse(slot), nil
}

// ListWorkerBookings lists every booking a worker holds, newest first, so
// the booking UI can show "my bookings" across slots
func (s *bookingService) ListWorkerBookings(ctx context.Context, workerID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(workerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid worker ID format %s", entity.ErrValidation, workerID)
	}

	bookings, err := s.repo.Booking.FindByWorkerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bookings of worker %s: %w", workerID, err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return bookingResponses, nil
}

// CancelSlot forces the cancelled terminal state regardless of booking
// count. Existing bookings stay on record; notifying their holders happens
// upstream.
func (s *bookingService) CancelSlot(ctx context.Context, slotID string, req *request.CancelSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	slot, err := s.repo.Slot.ForceCancel(ctx, id, req.Reason)
	if err != nil {
		return nil, err
	}

	s.log.Info("Slot cancelled by operator",
		zap.String("slot_id", slotID),
		zap.String("reason", req.Reason),
		zap.Int("affected_bookings", slot.BookedCount),
	)

	return response.SlotToResponse(slot), nil
}

func (s *bookingService) CompleteSlot(ctx context.Context, slotID string) (*response.SlotResponse, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	slot, err := s.repo.Slot.ForceComplete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("Slot completed",
		zap.String("slot_id", slotID),
		zap.Int("booked_count", slot.BookedCount),
	)

	return response.SlotToResponse(slot), nil
}

func (s *bookingService) ListSlotBookings(ctx context.Context, slotID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bookings of slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, entity.ErrSlotNotFound
	}

	bookings, err := s.repo.Booking.FindBySlotID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bookings of slot %s: %w", slotID, err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return bookingResponses, nil
}
