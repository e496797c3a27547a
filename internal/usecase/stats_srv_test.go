package usecase

import (
	"context"
	"testing"
	"time"

	"exam-booking/internal/data/entity"
	"exam-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStatsService(statsRepo repository.StatsRepository) StatsService {
	return NewStatsService(&repository.Repository{Stats: statsRepo}, zap.NewNop())
}

func TestStatsOverview(t *testing.T) {
	statsRepo := new(MockStatsRepo)
	service := newStatsService(statsRepo)

	statsRepo.On("Overview", mock.Anything).Return(&repository.SlotOverview{
		TotalSlots:     8,
		AvailableCount: 4,
		FullCount:      2,
		CancelledCount: 1,
		CompletedCount: 1,
		TotalCapacity:  20,
		TotalBooked:    15,
	}, nil)

	resp, err := service.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(8), resp.TotalSlots)
	assert.Equal(t, int64(4), resp.ByStatus.Available)
	assert.Equal(t, int64(2), resp.ByStatus.Full)
	assert.Equal(t, int64(1), resp.ByStatus.Cancelled)
	assert.Equal(t, int64(1), resp.ByStatus.Completed)
	assert.Equal(t, int64(20), resp.TotalCapacity)
	assert.Equal(t, int64(15), resp.TotalBooked)
	assert.InDelta(t, 0.75, resp.UtilizationRate, 1e-9)
}

func TestStatsOverview_EmptySet(t *testing.T) {
	statsRepo := new(MockStatsRepo)
	service := newStatsService(statsRepo)

	statsRepo.On("Overview", mock.Anything).Return(&repository.SlotOverview{}, nil)

	resp, err := service.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalSlots)
	assert.Equal(t, 0.0, resp.UtilizationRate)
}

func TestRevenue(t *testing.T) {
	statsRepo := new(MockStatsRepo)
	service := newStatsService(statsRepo)

	// the 7-day window is queried first, then the 30-day window
	statsRepo.On("RevenueSince", mock.Anything, mock.Anything).Return(350000.0, nil).Once()
	statsRepo.On("RevenueSince", mock.Anything, mock.Anything).Return(1250000.0, nil).Once()

	resp, err := service.Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 350000.0, resp.Last7Days)
	assert.Equal(t, 1250000.0, resp.Last30Days)
	statsRepo.AssertExpectations(t)
}

func TestUtilizationReport(t *testing.T) {
	statsRepo := new(MockStatsRepo)
	service := newStatsService(statsRepo)

	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	rows := []repository.SlotUtilizationRow{
		{SlotID: uuid.New(), SlotDate: date, StartTime: "09:00", Location: "Jakarta", TestType: "practical", Status: entity.SlotStatusFull, Capacity: 10, BookedCount: 10},
		{SlotID: uuid.New(), SlotDate: date, StartTime: "13:00", Location: "Jakarta", TestType: "theory", Status: entity.SlotStatusAvailable, Capacity: 10, BookedCount: 5},
		{SlotID: uuid.New(), SlotDate: date, StartTime: "15:00", Location: "Surabaya", TestType: "theory", Status: entity.SlotStatusCancelled, Capacity: 0, BookedCount: 0},
	}

	statsRepo.On("UtilizationRows", mock.Anything,
		mock.MatchedBy(func(from time.Time) bool { return from.Format("2006-01-02") == "2026-09-01" }),
		mock.MatchedBy(func(to time.Time) bool { return to.Format("2006-01-02") == "2026-09-30" }),
	).Return(rows, nil)

	resp, err := service.UtilizationReport(context.Background(), "2026-09-01", "2026-09-30")
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", resp.From)
	assert.Equal(t, "2026-09-30", resp.To)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, 100.0, resp.Slots[0].UtilizationPct)
	assert.Equal(t, 50.0, resp.Slots[1].UtilizationPct)
	assert.Equal(t, 0.0, resp.Slots[2].UtilizationPct)
	assert.Equal(t, "2026-09-10", resp.Slots[0].SlotDate)
}

func TestUtilizationReport_InvalidRange(t *testing.T) {
	service := newStatsService(new(MockStatsRepo))
	ctx := context.Background()

	_, err := service.UtilizationReport(ctx, "not-a-date", "")
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = service.UtilizationReport(ctx, "2026-09-30", "2026-09-01")
	assert.ErrorIs(t, err, entity.ErrValidation)
}
