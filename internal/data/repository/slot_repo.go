package repository

import (
	"context"
	"fmt"
	"time"

	"exam-booking/internal/data/entity"
	"exam-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SlotFilter is the structured query object for slot listings. Optional
// fields translate to parameterized WHERE clauses, never interpolation.
type SlotFilter struct {
	From          *time.Time
	To            *time.Time
	Search        string
	InstructorID  *uuid.UUID
	Status        *entity.SlotStatus
	AvailableOnly bool
	Limit         int
	Offset        int
}

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	List(ctx context.Context, filter SlotFilter) ([]*entity.Slot, error)
	Count(ctx context.Context, filter SlotFilter) (int64, error)
	Update(ctx context.Context, slot *entity.Slot) error
	UpdateCapacity(ctx context.Context, id uuid.UUID, capacity int) (*entity.Slot, error)
	ForceCancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Slot, error)
	ForceComplete(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	Delete(ctx context.Context, id uuid.UUID, cascade bool) error
}

const slotColumns = `id, slot_date, start_time, end_time, location, test_type, instructor_id,
		capacity, booked_count, status, price, notes, cancel_reason, recurrence, created_at, updated_at`

// scanSlot works for both pgx.Row and pgx.Rows
func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var slot entity.Slot
	err := row.Scan(
		&slot.ID,
		&slot.SlotDate,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Location,
		&slot.TestType,
		&slot.InstructorID,
		&slot.Capacity,
		&slot.BookedCount,
		&slot.Status,
		&slot.Price,
		&slot.Notes,
		&slot.CancelReason,
		&slot.Recurrence,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.Slot) error {
	query := `
		INSERT INTO slots (` + slotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.SlotDate,
		slot.StartTime,
		slot.EndTime,
		slot.Location,
		slot.TestType,
		slot.InstructorID,
		slot.Capacity,
		slot.BookedCount,
		slot.Status,
		slot.Price,
		slot.Notes,
		slot.CancelReason,
		slot.Recurrence,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
			zap.Time("slot_date", slot.SlotDate),
		)
		return fmt.Errorf("create slot %s: %w", slot.ID.String(), wrapStoreErr(err))
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), wrapStoreErr(err))
	}

	return slot, nil
}

// buildFilter translates the filter object into WHERE clauses with
// positional args, shared by List and Count
func buildFilter(filter SlotFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND slot_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND slot_date <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (location ILIKE $%d OR test_type ILIKE $%d OR notes ILIKE $%d)", n, n, n)
	}
	if filter.InstructorID != nil {
		args = append(args, *filter.InstructorID)
		where += fmt.Sprintf(" AND instructor_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.AvailableOnly {
		where += " AND status = 'available' AND slot_date >= CURRENT_DATE"
	}

	return where, args
}

func (r *slotRepository) List(ctx context.Context, filter SlotFilter) ([]*entity.Slot, error) {
	where, args := buildFilter(filter)

	query := `SELECT ` + slotColumns + ` FROM slots` + where + ` ORDER BY slot_date, start_time`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list slots", zap.Error(err))
		return nil, fmt.Errorf("list slots: %w", wrapStoreErr(err))
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", wrapStoreErr(err))
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) Count(ctx context.Context, filter SlotFilter) (int64, error) {
	where, args := buildFilter(filter)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM slots`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count slots", zap.Error(err))
		return 0, fmt.Errorf("count slots: %w", wrapStoreErr(err))
	}

	return count, nil
}

// Update writes the descriptive fields. Capacity and status changes go
// through UpdateCapacity / ForceCancel / ForceComplete so the guards apply.
func (r *slotRepository) Update(ctx context.Context, slot *entity.Slot) error {
	query := `
		UPDATE slots
		SET slot_date = $2, start_time = $3, end_time = $4, location = $5, test_type = $6,
		    instructor_id = $7, price = $8, notes = $9, recurrence = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.SlotDate,
		slot.StartTime,
		slot.EndTime,
		slot.Location,
		slot.TestType,
		slot.InstructorID,
		slot.Price,
		slot.Notes,
		slot.Recurrence,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("update slot %s: %w", slot.ID.String(), wrapStoreErr(err))
	}

	if result.RowsAffected() == 0 {
		return entity.ErrSlotNotFound
	}

	return nil
}

// UpdateCapacity changes capacity only when booked_count still fits, in a
// single conditional update so it serializes against concurrent bookings.
// Status is re-derived in the same statement.
func (r *slotRepository) UpdateCapacity(ctx context.Context, id uuid.UUID, capacity int) (*entity.Slot, error) {
	query := `
		UPDATE slots
		SET capacity = $2,
		    status = CASE
		        WHEN status IN ('cancelled', 'completed') THEN status
		        WHEN booked_count >= $2 THEN 'full'
		        ELSE 'available'
		    END,
		    updated_at = NOW()
		WHERE id = $1 AND booked_count <= $2
		RETURNING ` + slotColumns

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id, capacity))
	if err == pgx.ErrNoRows {
		// Distinguish a missing slot from a capacity violation
		existing, findErr := r.FindByID(ctx, id)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, entity.ErrSlotNotFound
		}
		return nil, entity.ErrCapacityViolation
	}
	if err != nil {
		r.log.Error("Failed to update slot capacity",
			zap.Error(err),
			zap.String("slot_id", id.String()),
			zap.Int("capacity", capacity),
		)
		return nil, fmt.Errorf("update capacity of slot %s: %w", id.String(), wrapStoreErr(err))
	}

	return slot, nil
}

func (r *slotRepository) ForceCancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Slot, error) {
	query := `
		UPDATE slots
		SET status = 'cancelled', cancel_reason = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('available', 'full')
		RETURNING ` + slotColumns

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id, reason))
	if err == pgx.ErrNoRows {
		return nil, r.classifyTerminalMiss(ctx, id)
	}
	if err != nil {
		r.log.Error("Failed to cancel slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("cancel slot %s: %w", id.String(), wrapStoreErr(err))
	}

	r.log.Info("Slot cancelled",
		zap.String("slot_id", id.String()),
		zap.String("reason", reason),
	)
	return slot, nil
}

func (r *slotRepository) ForceComplete(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `
		UPDATE slots
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status IN ('available', 'full')
		RETURNING ` + slotColumns

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, r.classifyTerminalMiss(ctx, id)
	}
	if err != nil {
		r.log.Error("Failed to complete slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("complete slot %s: %w", id.String(), wrapStoreErr(err))
	}

	r.log.Info("Slot completed", zap.String("slot_id", id.String()))
	return slot, nil
}

// classifyTerminalMiss resolves a zero-row force transition into
// not-found vs already-terminal
func (r *slotRepository) classifyTerminalMiss(ctx context.Context, id uuid.UUID) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return entity.ErrSlotNotFound
	}
	return entity.ErrInvalidTransition
}

// Delete removes a slot. With cascade it purges dependent bookings in the
// same transaction; without it a slot with confirmed bookings conflicts.
func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID, cascade bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete slot tx: %w", wrapStoreErr(err))
	}
	defer tx.Rollback(ctx)

	var bookingCount int64
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE slot_id = $1 AND status = 'confirmed'`, id,
	).Scan(&bookingCount)
	if err != nil {
		return fmt.Errorf("count bookings of slot %s: %w", id.String(), wrapStoreErr(err))
	}

	if bookingCount > 0 && !cascade {
		return entity.ErrSlotHasBookings
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE slot_id = $1`, id); err != nil {
		return fmt.Errorf("delete bookings of slot %s: %w", id.String(), wrapStoreErr(err))
	}

	result, err := tx.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("delete slot %s: %w", id.String(), wrapStoreErr(err))
	}

	if result.RowsAffected() == 0 {
		return entity.ErrSlotNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete slot tx: %w", wrapStoreErr(err))
	}

	r.log.Info("Slot deleted",
		zap.String("slot_id", id.String()),
		zap.Int64("purged_bookings", bookingCount),
	)
	return nil
}
