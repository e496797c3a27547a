package usecase

import (
	"context"
	"fmt"
	"time"

	"exam-booking/internal/data/entity"
	"exam-booking/internal/data/repository"
	"exam-booking/internal/dto/request"
	"exam-booking/internal/dto/response"
	"exam-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotService interface {
	// Admin endpoints
	CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error)
	BulkCreateSlots(ctx context.Context, req *request.BulkCreateSlotsRequest) (*response.BulkCreateSlotsResponse, error)
	UpdateSlot(ctx context.Context, slotID string, req *request.UpdateSlotRequest) (*response.SlotResponse, error)
	DeleteSlot(ctx context.Context, slotID string, cascade bool) error

	// Read-only queries (public + admin)
	GetSlot(ctx context.Context, slotID string) (*response.SlotResponse, error)
	ListSlots(ctx context.Context, req *request.SlotFilterRequest) (*response.PaginatedResponse[response.SlotResponse], error)
}

type slotService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSlotService(repo *repository.Repository, log *zap.Logger) SlotService {
	return &slotService{
		repo: repo,
		log:  log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error) {
	slot, err := s.buildSlot(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		s.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("location", req.Location),
			zap.String("slot_date", req.SlotDate),
		)
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.log.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("slot_date", req.SlotDate),
		zap.String("location", req.Location),
		zap.Int("capacity", req.Capacity),
	)

	return response.SlotToResponse(slot), nil
}

// BulkCreateSlots applies create validation per draft; outcomes are
// independent and reported per index, there is no all-or-nothing guarantee
func (s *slotService) BulkCreateSlots(ctx context.Context, req *request.BulkCreateSlotsRequest) (*response.BulkCreateSlotsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Bulk create validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	result := &response.BulkCreateSlotsResponse{
		Results: make([]response.BulkCreateResult, len(req.Slots)),
	}

	for i := range req.Slots {
		slotResp, err := s.CreateSlot(ctx, &req.Slots[i])
		if err != nil {
			result.Failed++
			result.Results[i] = response.BulkCreateResult{Index: i, Error: err.Error()}
			continue
		}
		result.Created++
		result.Results[i] = response.BulkCreateResult{Index: i, Slot: slotResp}
	}

	s.log.Info("Bulk slot creation finished",
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

func (s *slotService) UpdateSlot(ctx context.Context, slotID string, req *request.UpdateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, entity.ErrSlotNotFound
	}

	// Capacity first: the conditional update rejects lowering below the
	// current booked count and re-derives status
	if req.Capacity != nil {
		if _, err := s.repo.Slot.UpdateCapacity(ctx, id, *req.Capacity); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.Notes != nil || req.InstructorID != nil {
		if req.Price != nil {
			slot.Price = *req.Price
		}
		if req.Notes != nil {
			slot.Notes = *req.Notes
		}
		if req.InstructorID != nil {
			instructorID, err := uuid.Parse(*req.InstructorID)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid instructor ID format %s", entity.ErrValidation, *req.InstructorID)
			}
			slot.InstructorID = &instructorID
		}
		slot.UpdatedAt = time.Now()

		if err := s.repo.Slot.Update(ctx, slot); err != nil {
			return nil, err
		}
	}

	// Status override goes through the same forced transitions as the
	// dedicated cancel/complete operations
	if req.Status != nil {
		switch entity.SlotStatus(*req.Status) {
		case entity.SlotStatusCancelled:
			if _, err := s.repo.Slot.ForceCancel(ctx, id, ""); err != nil {
				return nil, err
			}
		case entity.SlotStatusCompleted:
			if _, err := s.repo.Slot.ForceComplete(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload slot %s: %w", slotID, err)
	}
	if updated == nil {
		return nil, entity.ErrSlotNotFound
	}

	s.log.Info("Slot updated", zap.String("slot_id", slotID))
	return response.SlotToResponse(updated), nil
}

func (s *slotService) DeleteSlot(ctx context.Context, slotID string, cascade bool) error {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	if err := s.repo.Slot.Delete(ctx, id, cascade); err != nil {
		return err
	}

	s.log.Info("Slot deleted",
		zap.String("slot_id", slotID),
		zap.Bool("cascade", cascade),
	)
	return nil
}

func (s *slotService) GetSlot(ctx context.Context, slotID string) (*response.SlotResponse, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID format %s", entity.ErrValidation, slotID)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, entity.ErrSlotNotFound
	}

	return response.SlotToResponse(slot), nil
}

func (s *slotService) ListSlots(ctx context.Context, req *request.SlotFilterRequest) (*response.PaginatedResponse[response.SlotResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List slots validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	filter, err := buildSlotFilter(req)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.Slot.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list slots", zap.Error(err))
		return nil, fmt.Errorf("list slots: %w", err)
	}

	total, err := s.repo.Slot.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count slots", zap.Error(err))
		return nil, fmt.Errorf("count slots: %w", err)
	}

	slotResponses := make([]response.SlotResponse, len(slots))
	for i, slot := range slots {
		slotResponses[i] = *response.SlotToResponse(slot)
	}

	return response.NewPaginatedResponse(slotResponses, req.Page, req.PerPage, total), nil
}

// buildSlot validates a creation draft and materializes the entity in its
// initial state: booked_count 0, status available
func (s *slotService) buildSlot(req *request.CreateSlotRequest) (*entity.Slot, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	slotDate, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot date %s", entity.ErrValidation, req.SlotDate)
	}

	// HH:MM strings compare correctly as text
	if req.EndTime <= req.StartTime {
		return nil, fmt.Errorf("%w: end time %s must be after start time %s", entity.ErrValidation, req.EndTime, req.StartTime)
	}

	var instructorID *uuid.UUID
	if req.InstructorID != nil {
		parsed, err := uuid.Parse(*req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid instructor ID format %s", entity.ErrValidation, *req.InstructorID)
		}
		instructorID = &parsed
	}

	now := time.Now()
	return &entity.Slot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SlotDate:     slotDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		TestType:     req.TestType,
		InstructorID: instructorID,
		Capacity:     req.Capacity,
		BookedCount:  0,
		Status:       entity.SlotStatusAvailable,
		Price:        req.Price,
		Notes:        req.Notes,
		Recurrence:   req.Recurrence,
	}, nil
}

// buildSlotFilter translates the request DTO into the store filter object
func buildSlotFilter(req *request.SlotFilterRequest) (repository.SlotFilter, error) {
	filter := repository.SlotFilter{
		Search:        req.Query,
		AvailableOnly: req.AvailableOnly,
		Limit:         req.Limit(),
		Offset:        req.Offset(),
	}

	if req.From != "" {
		from, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date %s", entity.ErrValidation, req.From)
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date %s", entity.ErrValidation, req.To)
		}
		filter.To = &to
	}
	if req.InstructorID != "" {
		instructorID, err := uuid.Parse(req.InstructorID)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid instructor ID format %s", entity.ErrValidation, req.InstructorID)
		}
		filter.InstructorID = &instructorID
	}
	if req.Status != "" {
		status := entity.SlotStatus(req.Status)
		filter.Status = &status
	}

	return filter, nil
}
