package usecase

import (
	"context"
	"fmt"
	"time"

	"exam-booking/internal/data/entity"
	"exam-booking/internal/data/repository"
	"exam-booking/internal/dto/response"

	"go.uber.org/zap"
)

type StatsService interface {
	Overview(ctx context.Context) (*response.StatsOverviewResponse, error)
	Revenue(ctx context.Context) (*response.RevenueResponse, error)
	UtilizationReport(ctx context.Context, from, to string) (*response.UtilizationReportResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) Overview(ctx context.Context) (*response.StatsOverviewResponse, error) {
	overview, err := s.repo.Stats.Overview(ctx)
	if err != nil {
		s.log.Error("Failed to compute stats overview", zap.Error(err))
		return nil, fmt.Errorf("stats overview: %w", err)
	}

	return &response.StatsOverviewResponse{
		TotalSlots: overview.TotalSlots,
		ByStatus: response.StatusCounts{
			Available: overview.AvailableCount,
			Full:      overview.FullCount,
			Cancelled: overview.CancelledCount,
			Completed: overview.CompletedCount,
		},
		TotalCapacity:   overview.TotalCapacity,
		TotalBooked:     overview.TotalBooked,
		UtilizationRate: entity.UtilizationRate(overview.TotalBooked, overview.TotalCapacity),
	}, nil
}

func (s *statsService) Revenue(ctx context.Context) (*response.RevenueResponse, error) {
	now := time.Now()

	last7, err := s.repo.Stats.RevenueSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		s.log.Error("Failed to compute 7-day revenue", zap.Error(err))
		return nil, fmt.Errorf("revenue last 7 days: %w", err)
	}

	last30, err := s.repo.Stats.RevenueSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		s.log.Error("Failed to compute 30-day revenue", zap.Error(err))
		return nil, fmt.Errorf("revenue last 30 days: %w", err)
	}

	return &response.RevenueResponse{
		Last7Days:  last7,
		Last30Days: last30,
	}, nil
}

// UtilizationReport lists per-slot utilization for the range. Missing
// bounds default to the trailing 30 days.
func (s *statsService) UtilizationReport(ctx context.Context, from, to string) (*response.UtilizationReportResponse, error) {
	now := time.Now()
	fromDate := now.AddDate(0, 0, -30)
	toDate := now

	var err error
	if from != "" {
		fromDate, err = time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date %s", entity.ErrValidation, from)
		}
	}
	if to != "" {
		toDate, err = time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date %s", entity.ErrValidation, to)
		}
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: to date %s is before from date %s", entity.ErrValidation, to, from)
	}

	rows, err := s.repo.Stats.UtilizationRows(ctx, fromDate, toDate)
	if err != nil {
		s.log.Error("Failed to build utilization report", zap.Error(err))
		return nil, fmt.Errorf("utilization report: %w", err)
	}

	slots := make([]response.SlotUtilizationResponse, len(rows))
	for i, row := range rows {
		slots[i] = response.SlotUtilizationResponse{
			SlotID:         row.SlotID.String(),
			SlotDate:       row.SlotDate.Format("2006-01-02"),
			StartTime:      row.StartTime,
			Location:       row.Location,
			TestType:       row.TestType,
			Status:         row.Status,
			Capacity:       row.Capacity,
			BookedCount:    row.BookedCount,
			UtilizationPct: entity.UtilizationRate(int64(row.BookedCount), int64(row.Capacity)) * 100,
		}
	}

	return &response.UtilizationReportResponse{
		From:  fromDate.Format("2006-01-02"),
		To:    toDate.Format("2006-01-02"),
		Slots: slots,
	}, nil
}
