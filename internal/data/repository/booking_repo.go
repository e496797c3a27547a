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

type BookingRepository interface {
	// Book atomically claims one capacity unit and inserts the booking
	// record in a single transaction. It is the only path that increments
	// booked_count.
	Book(ctx context.Context, slotID, workerID uuid.UUID) (*entity.Slot, *entity.Booking, error)

	// Cancel removes the booking record and releases its capacity unit in
	// a single transaction. It is the only path that decrements booked_count.
	Cancel(ctx context.Context, slotID, bookingID uuid.UUID) (*entity.Slot, error)

	FindBySlotID(ctx context.Context, slotID uuid.UUID) ([]*entity.Booking, error)
	FindByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Book(ctx context.Context, slotID, workerID uuid.UUID) (*entity.Slot, *entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin book tx: %w", wrapStoreErr(err))
	}
	defer tx.Rollback(ctx)

	// Conditional increment: the WHERE guard makes check-then-increment one
	// atomic statement, so concurrent bookers serialize on the row lock and
	// booked_count can never pass capacity.
	incrQuery := `
		UPDATE slots
		SET booked_count = booked_count + 1,
		    status = CASE WHEN booked_count + 1 >= capacity THEN 'full' ELSE 'available' END,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'available' AND booked_count < capacity
		RETURNING ` + slotColumns

	slot, err := scanSlot(tx.QueryRow(ctx, incrQuery, slotID))
	if err == pgx.ErrNoRows {
		return nil, nil, r.classifyBookMiss(ctx, tx, slotID)
	}
	if err != nil {
		r.log.Error("Failed to claim slot capacity",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, nil, fmt.Errorf("claim capacity of slot %s: %w", slotID.String(), wrapStoreErr(err))
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		SlotID:   slotID,
		WorkerID: workerID,
		Status:   entity.BookingStatusConfirmed,
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, slot_id, worker_id, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		booking.ID,
		booking.SlotID,
		booking.WorkerID,
		booking.Status,
		booking.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("worker_id", workerID.String()),
		)
		return nil, nil, fmt.Errorf("insert booking for slot %s: %w", slotID.String(), wrapStoreErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit book tx: %w", wrapStoreErr(err))
	}

	r.log.Info("Slot booked",
		zap.String("slot_id", slotID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("worker_id", workerID.String()),
		zap.Int("booked_count", slot.BookedCount),
		zap.Int("capacity", slot.Capacity),
	)
	return slot, booking, nil
}

// classifyBookMiss resolves a zero-row conditional increment into the
// precise failure: missing slot, terminal slot, or full slot
func (r *bookingRepository) classifyBookMiss(ctx context.Context, tx pgx.Tx, slotID uuid.UUID) error {
	var status entity.SlotStatus
	err := tx.QueryRow(ctx, `SELECT status FROM slots WHERE id = $1`, slotID).Scan(&status)
	if err == pgx.ErrNoRows {
		return entity.ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("classify booking failure for slot %s: %w", slotID.String(), wrapStoreErr(err))
	}

	if status == entity.SlotStatusCancelled || status == entity.SlotStatusCompleted {
		return entity.ErrSlotNotBookable
	}
	return entity.ErrSlotFull
}

func (r *bookingRepository) Cancel(ctx context.Context, slotID, bookingID uuid.UUID) (*entity.Slot, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", wrapStoreErr(err))
	}
	defer tx.Rollback(ctx)

	// Lock the slot row first so the terminal check and the decrement see
	// the same state under concurrent operations
	var status entity.SlotStatus
	err = tx.QueryRow(ctx, `SELECT status FROM slots WHERE id = $1 FOR UPDATE`, slotID).Scan(&status)
	if err == pgx.ErrNoRows {
		return nil, entity.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock slot %s: %w", slotID.String(), wrapStoreErr(err))
	}

	if status == entity.SlotStatusCancelled || status == entity.SlotStatusCompleted {
		return nil, entity.ErrSlotNotBookable
	}

	result, err := tx.Exec(ctx,
		`DELETE FROM bookings WHERE id = $1 AND slot_id = $2 AND status = 'confirmed'`,
		bookingID, slotID,
	)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("delete booking %s: %w", bookingID.String(), wrapStoreErr(err))
	}

	if result.RowsAffected() == 0 {
		return nil, entity.ErrBookingNotFound
	}

	// Floor at zero defensively; the invariant keeps it from going negative
	decrQuery := `
		UPDATE slots
		SET booked_count = GREATEST(booked_count - 1, 0),
		    status = CASE WHEN GREATEST(booked_count - 1, 0) >= capacity THEN 'full' ELSE 'available' END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + slotColumns

	slot, err := scanSlot(tx.QueryRow(ctx, decrQuery, slotID))
	if err != nil {
		r.log.Error("Failed to release slot capacity",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("release capacity of slot %s: %w", slotID.String(), wrapStoreErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel tx: %w", wrapStoreErr(err))
	}

	r.log.Info("Booking cancelled",
		zap.String("slot_id", slotID.String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("booked_count", slot.BookedCount),
	)
	return slot, nil
}

func (r *bookingRepository) FindBySlotID(ctx context.Context, slotID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT id, slot_id, worker_id, status, created_at
		FROM bookings
		WHERE slot_id = $1
		ORDER BY created_at
	`

	return r.findMany(ctx, query, slotID)
}

func (r *bookingRepository) FindByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT id, slot_id, worker_id, status, created_at
		FROM bookings
		WHERE worker_id = $1
		ORDER BY created_at DESC
	`

	return r.findMany(ctx, query, workerID)
}

func (r *bookingRepository) findMany(ctx context.Context, query string, arg any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", wrapStoreErr(err))
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.SlotID,
			&booking.WorkerID,
			&booking.Status,
			&booking.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", wrapStoreErr(err))
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
