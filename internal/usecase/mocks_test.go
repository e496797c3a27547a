package usecase

import (
	"context"
	"sync"
	"time"

	"exam-booking/internal/data/entity"
	"exam-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories

type MockSlotRepo struct{ mock.Mock }

func (m *MockSlotRepo) Create(ctx context.Context, slot *entity.Slot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *MockSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Slot), args.Error(1)
}

func (m *MockSlotRepo) List(ctx context.Context, filter repository.SlotFilter) ([]*entity.Slot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Slot), args.Error(1)
}

func (m *MockSlotRepo) Count(ctx context.Context, filter repository.SlotFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSlotRepo) Update(ctx context.Context, slot *entity.Slot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *MockSlotRepo) UpdateCapacity(ctx context.Context, id uuid.UUID, capacity int) (*entity.Slot, error) {
	args := m.Called(ctx, id, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Slot), args.Error(1)
}

func (m *MockSlotRepo) ForceCancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Slot, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Slot), args.Error(1)
}

func (m *MockSlotRepo) ForceComplete(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Slot), args.Error(1)
}

func (m *MockSlotRepo) Delete(ctx context.Context, id uuid.UUID, cascade bool) error {
	return m.Called(ctx, id, cascade).Error(0)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Book(ctx context.Context, slotID, workerID uuid.UUID) (*entity.Slot, *entity.Booking, error) {
	args := m.Called(ctx, slotID, workerID)
	var slot *entity.Slot
	var booking *entity.Booking
	if args.Get(0) != nil {
		slot = args.Get(0).(*entity.Slot)
	}
	if args.Get(1) != nil {
		booking = args.Get(1).(*entity.Booking)
	}
	return slot, booking, args.Error(2)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, slotID, bookingID uuid.UUID) (*entity.Slot, error) {
	args := m.Called(ctx, slotID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Slot), args.Error(1)
}

func (m *MockBookingRepo) FindBySlotID(ctx context.Context, slotID uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

type MockStatsRepo struct{ mock.Mock }

func (m *MockStatsRepo) Overview(ctx context.Context) (*repository.SlotOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SlotOverview), args.Error(1)
}

func (m *MockStatsRepo) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockStatsRepo) UtilizationRows(ctx context.Context, from, to time.Time) ([]repository.SlotUtilizationRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SlotUtilizationRow), args.Error(1)
}

// memBookingRepo is an in-memory BookingRepository with the same
// conditional-increment semantics as the SQL implementation. The mutex
// stands in for the row lock, which is what the concurrency drill needs
// and what mock.Mock cannot express.
type memBookingRepo struct {
	mu       sync.Mutex
	slot     *entity.Slot
	bookings map[uuid.UUID]*entity.Booking
}

func newMemBookingRepo(slot *entity.Slot) *memBookingRepo {
	return &memBookingRepo{
		slot:     slot,
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func (f *memBookingRepo) Book(ctx context.Context, slotID, workerID uuid.UUID) (*entity.Slot, *entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.slot == nil || f.slot.ID != slotID {
		return nil, nil, entity.ErrSlotNotFound
	}
	if f.slot.IsTerminal() {
		return nil, nil, entity.ErrSlotNotBookable
	}
	if f.slot.BookedCount >= f.slot.Capacity {
		return nil, nil, entity.ErrSlotFull
	}

	f.slot.BookedCount++
	f.slot.DeriveAvailability()

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		SlotID:     slotID,
		WorkerID:   workerID,
		Status:     entity.BookingStatusConfirmed,
	}
	f.bookings[booking.ID] = booking

	snapshot := *f.slot
	return &snapshot, booking, nil
}

func (f *memBookingRepo) Cancel(ctx context.Context, slotID, bookingID uuid.UUID) (*entity.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.slot == nil || f.slot.ID != slotID {
		return nil, entity.ErrSlotNotFound
	}
	if f.slot.IsTerminal() {
		return nil, entity.ErrSlotNotBookable
	}
	if _, ok := f.bookings[bookingID]; !ok {
		return nil, entity.ErrBookingNotFound
	}

	delete(f.bookings, bookingID)
	if f.slot.BookedCount > 0 {
		f.slot.BookedCount--
	}
	f.slot.DeriveAvailability()

	snapshot := *f.slot
	return &snapshot, nil
}

func (f *memBookingRepo) FindBySlotID(ctx context.Context, slotID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Booking
	for _, b := range f.bookings {
		if b.SlotID == slotID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *memBookingRepo) FindByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Booking
	for _, b := range f.bookings {
		if b.WorkerID == workerID {
			result = append(result, b)
		}
	}
	return result, nil
}
