package repository

import (
	"context"
	"fmt"
	"time"

	"exam-booking/internal/data/entity"
	"exam-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotOverview is the aggregate snapshot over the whole slot set
type SlotOverview struct {
	TotalSlots     int64
	AvailableCount int64
	FullCount      int64
	CancelledCount int64
	CompletedCount int64
	TotalCapacity  int64
	TotalBooked    int64
}

// SlotUtilizationRow is one slot's capacity usage within a report range
type SlotUtilizationRow struct {
	SlotID      uuid.UUID
	SlotDate    time.Time
	StartTime   string
	Location    string
	TestType    string
	Status      entity.SlotStatus
	Capacity    int
	BookedCount int
}

type StatsRepository interface {
	Overview(ctx context.Context) (*SlotOverview, error)
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	UtilizationRows(ctx context.Context, from, to time.Time) ([]SlotUtilizationRow, error)
}

type statsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatsRepository(db database.PgxIface, log *zap.Logger) StatsRepository {
	return &statsRepository{
		db:  db,
		log: log.With(zap.String("repository", "stats")),
	}
}

func (r *statsRepository) Overview(ctx context.Context) (*SlotOverview, error) {
	query := `
		SELECT
			COUNT(*)                                       AS total_slots,
			COUNT(*) FILTER (WHERE status = 'available')   AS available_count,
			COUNT(*) FILTER (WHERE status = 'full')        AS full_count,
			COUNT(*) FILTER (WHERE status = 'cancelled')   AS cancelled_count,
			COUNT(*) FILTER (WHERE status = 'completed')   AS completed_count,
			COALESCE(SUM(capacity), 0)                     AS total_capacity,
			COALESCE(SUM(booked_count), 0)                 AS total_booked
		FROM slots
	`

	var o SlotOverview
	err := r.db.QueryRow(ctx, query).Scan(
		&o.TotalSlots,
		&o.AvailableCount,
		&o.FullCount,
		&o.CancelledCount,
		&o.CompletedCount,
		&o.TotalCapacity,
		&o.TotalBooked,
	)
	if err != nil {
		r.log.Error("Failed to compute slot overview", zap.Error(err))
		return nil, fmt.Errorf("compute slot overview: %w", wrapStoreErr(err))
	}

	return &o, nil
}

// RevenueSince sums price * booked_count over completed slots whose date
// falls on or after the window start
func (r *statsRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(price * booked_count), 0)
		FROM slots
		WHERE status = 'completed' AND slot_date >= $1
	`

	var revenue float64
	err := r.db.QueryRow(ctx, query, since).Scan(&revenue)
	if err != nil {
		r.log.Error("Failed to compute revenue",
			zap.Error(err),
			zap.Time("since", since),
		)
		return 0, fmt.Errorf("compute revenue since %s: %w", since.Format("2006-01-02"), wrapStoreErr(err))
	}

	return revenue, nil
}

func (r *statsRepository) UtilizationRows(ctx context.Context, from, to time.Time) ([]SlotUtilizationRow, error) {
	query := `
		SELECT id, slot_date, start_time, location, test_type, status, capacity, booked_count
		FROM slots
		WHERE slot_date >= $1 AND slot_date <= $2
		ORDER BY slot_date, start_time
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to query utilization rows", zap.Error(err))
		return nil, fmt.Errorf("query utilization rows: %w", wrapStoreErr(err))
	}
	defer rows.Close()

	var result []SlotUtilizationRow
	for rows.Next() {
		var row SlotUtilizationRow
		err := rows.Scan(
			&row.SlotID,
			&row.SlotDate,
			&row.StartTime,
			&row.Location,
			&row.TestType,
			&row.Status,
			&row.Capacity,
			&row.BookedCount,
		)
		if err != nil {
			r.log.Error("Failed to scan utilization row", zap.Error(err))
			return nil, fmt.Errorf("scan utilization row: %w", wrapStoreErr(err))
		}
		result = append(result, row)
	}

	return result, nil
}
