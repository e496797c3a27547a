package usecase

import (
	"context"
	"testing"

	"exam-booking/internal/data/entity"
	"exam-booking/internal/data/repository"
	"exam-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validCreateRequest() request.CreateSlotRequest {
	return request.CreateSlotRequest{
		SlotDate:  "2026-09-15",
		StartTime: "09:00",
		EndTime:   "10:30",
		Location:  "Bandung",
		TestType:  "theory",
		Capacity:  12,
		Price:     175000,
	}
}

func newSlotService(slotRepo repository.SlotRepository) SlotService {
	return NewSlotService(&repository.Repository{Slot: slotRepo}, zap.NewNop())
}

func TestCreateSlot(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	slotRepo.On("Create", mock.Anything, mock.MatchedBy(func(slot *entity.Slot) bool {
		return slot.BookedCount == 0 && slot.Status == entity.SlotStatusAvailable
	})).Return(nil)

	req := validCreateRequest()
	resp, err := service.CreateSlot(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", resp.SlotDate)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, 12, resp.Capacity)
	assert.Equal(t, 0, resp.BookedCount)
	assert.Equal(t, entity.SlotStatusAvailable, resp.Status)
	slotRepo.AssertExpectations(t)
}

func TestCreateSlot_Validation(t *testing.T) {
	// no repo expectations: invalid drafts must never reach the store
	service := newSlotService(new(MockSlotRepo))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*request.CreateSlotRequest)
	}{
		{"zero capacity", func(r *request.CreateSlotRequest) { r.Capacity = 0 }},
		{"negative capacity", func(r *request.CreateSlotRequest) { r.Capacity = -3 }},
		{"missing date", func(r *request.CreateSlotRequest) { r.SlotDate = "" }},
		{"malformed date", func(r *request.CreateSlotRequest) { r.SlotDate = "15-09-2026" }},
		{"missing start time", func(r *request.CreateSlotRequest) { r.StartTime = "" }},
		{"end before start", func(r *request.CreateSlotRequest) { r.EndTime = "08:00" }},
		{"end equals start", func(r *request.CreateSlotRequest) { r.EndTime = r.StartTime }},
		{"missing location", func(r *request.CreateSlotRequest) { r.Location = "" }},
		{"negative price", func(r *request.CreateSlotRequest) { r.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			_, err := service.CreateSlot(ctx, &req)
			assert.ErrorIs(t, err, entity.ErrValidation)
		})
	}
}

func TestBulkCreateSlots_PerItemOutcomes(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	slotRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	good1 := validCreateRequest()
	bad := validCreateRequest()
	bad.Capacity = 0
	good2 := validCreateRequest()
	good2.StartTime = "13:00"
	good2.EndTime = "14:30"

	resp, err := service.BulkCreateSlots(context.Background(), &request.BulkCreateSlotsRequest{
		Slots: []request.CreateSlotRequest{good1, bad, good2},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)

	assert.NotNil(t, resp.Results[0].Slot)
	assert.Empty(t, resp.Results[0].Error)

	assert.Nil(t, resp.Results[1].Slot)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Equal(t, 1, resp.Results[1].Index)

	assert.NotNil(t, resp.Results[2].Slot)
	slotRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestBulkCreateSlots_EmptyBatch(t *testing.T) {
	service := newSlotService(new(MockSlotRepo))

	_, err := service.BulkCreateSlots(context.Background(), &request.BulkCreateSlotsRequest{})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpdateSlot_CapacityBelowBookedCount(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	slot := testSlot(10)
	slot.BookedCount = 7

	newCapacity := 5
	slotRepo.On("FindByID", mock.Anything, slot.ID).Return(slot, nil)
	slotRepo.On("UpdateCapacity", mock.Anything, slot.ID, newCapacity).Return(nil, entity.ErrCapacityViolation)

	_, err := service.UpdateSlot(context.Background(), slot.ID.String(), &request.UpdateSlotRequest{Capacity: &newCapacity})
	assert.ErrorIs(t, err, entity.ErrCapacityViolation)
	slotRepo.AssertExpectations(t)
}

func TestUpdateSlot_Fields(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	slot := testSlot(10)

	newPrice := 200000.0
	newNotes := "bring ID card"
	slotRepo.On("FindByID", mock.Anything, slot.ID).Return(slot, nil)
	slotRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *entity.Slot) bool {
		return s.Price == newPrice && s.Notes == newNotes
	})).Return(nil)

	resp, err := service.UpdateSlot(context.Background(), slot.ID.String(), &request.UpdateSlotRequest{
		Price: &newPrice,
		Notes: &newNotes,
	})
	require.NoError(t, err)
	assert.Equal(t, newPrice, resp.Price)
	slotRepo.AssertExpectations(t)
}

func TestUpdateSlot_StatusOverride(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	slot := testSlot(10)
	cancelled := *slot
	cancelled.Status = entity.SlotStatusCancelled

	status := "cancelled"
	slotRepo.On("FindByID", mock.Anything, slot.ID).Return(slot, nil).Once()
	slotRepo.On("ForceCancel", mock.Anything, slot.ID, "").Return(&cancelled, nil)
	slotRepo.On("FindByID", mock.Anything, slot.ID).Return(&cancelled, nil).Once()

	resp, err := service.UpdateSlot(context.Background(), slot.ID.String(), &request.UpdateSlotRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.SlotStatusCancelled, resp.Status)
	slotRepo.AssertExpectations(t)
}

func TestUpdateSlot_RejectsUnknownStatus(t *testing.T) {
	service := newSlotService(new(MockSlotRepo))

	status := "available"
	_, err := service.UpdateSlot(context.Background(), uuid.NewString(), &request.UpdateSlotRequest{Status: &status})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestDeleteSlot(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	id := uuid.New()
	slotRepo.On("Delete", mock.Anything, id, false).Return(entity.ErrSlotHasBookings).Once()
	slotRepo.On("Delete", mock.Anything, id, true).Return(nil).Once()

	err := service.DeleteSlot(context.Background(), id.String(), false)
	assert.ErrorIs(t, err, entity.ErrSlotHasBookings)

	err = service.DeleteSlot(context.Background(), id.String(), true)
	assert.NoError(t, err)
	slotRepo.AssertExpectations(t)
}

func TestGetSlot_NotFound(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	id := uuid.New()
	slotRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := service.GetSlot(context.Background(), id.String())
	assert.ErrorIs(t, err, entity.ErrSlotNotFound)
}

func TestListSlots_FilterPassThrough(t *testing.T) {
	slotRepo := new(MockSlotRepo)
	service := newSlotService(slotRepo)

	instructorID := uuid.New()
	req := &request.SlotFilterRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 20},
		From:             "2026-09-01",
		To:               "2026-09-30",
		Query:            "jakarta",
		InstructorID:     instructorID.String(),
		Status:           "available",
	}

	matchFilter := mock.MatchedBy(func(f repository.SlotFilter) bool {
		return f.From != nil && f.From.Format("2006-01-02") == "2026-09-01" &&
			f.To != nil && f.To.Format("2006-01-02") == "2026-09-30" &&
			f.Search == "jakarta" &&
			f.InstructorID != nil && *f.InstructorID == instructorID &&
			f.Status != nil && *f.Status == entity.SlotStatusAvailable &&
			f.Limit == 20 && f.Offset == 20
	})

	slotRepo.On("List", mock.Anything, matchFilter).Return([]*entity.Slot{testSlot(10)}, nil)
	slotRepo.On("Count", mock.Anything, matchFilter).Return(int64(42), nil)

	resp, err := service.ListSlots(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(42), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	slotRepo.AssertExpectations(t)
}

func TestListSlots_InvalidFilter(t *testing.T) {
	service := newSlotService(new(MockSlotRepo))
	ctx := context.Background()

	page1 := request.PaginatedRequest{Page: 1, PerPage: 20}

	_, err := service.ListSlots(ctx, &request.SlotFilterRequest{PaginatedRequest: page1, From: "soon"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = service.ListSlots(ctx, &request.SlotFilterRequest{PaginatedRequest: page1, Status: "open"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestBuildSlotFilter_Defaults(t *testing.T) {
	filter, err := buildSlotFilter(&request.SlotFilterRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 20},
	})
	require.NoError(t, err)

	assert.Nil(t, filter.From)
	assert.Nil(t, filter.To)
	assert.Nil(t, filter.InstructorID)
	assert.Nil(t, filter.Status)
	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
}
