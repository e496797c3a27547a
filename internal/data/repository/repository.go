package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"exam-booking/internal/data/entity"
	"exam-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	Slot    SlotRepository
	Booking BookingRepository
	Stats   StatsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Slot:    NewSlotRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Stats:   NewStatsRepository(db, log),
	}
}

// wrapStoreErr tags connection-level failures (store down, dial or query
// timeout) so handlers can answer 503 instead of a generic 500. Other
// errors pass through unchanged.
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	return err
}
