package usecase

import (
	"exam-booking/internal/data/repository"
	"exam-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Slot    SlotService
	Booking BookingService
	Stats   StatsService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Slot:    NewSlotService(repo, log),
		Booking: NewBookingService(repo, log),
		Stats:   NewStatsService(repo, log),
	}
}
