package response

import "exam-booking/internal/data/entity"

type StatusCounts struct {
	Available int64 `json:"available"`
	Full      int64 `json:"full"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

type StatsOverviewResponse struct {
	TotalSlots      int64        `json:"total_slots"`
	ByStatus        StatusCounts `json:"by_status"`
	TotalCapacity   int64        `json:"total_capacity"`
	TotalBooked     int64        `json:"total_booked"`
	UtilizationRate float64      `json:"utilization_rate"`
}

type RevenueResponse struct {
	Last7Days  float64 `json:"last_7_days"`
	Last30Days float64 `json:"last_30_days"`
}

type SlotUtilizationResponse struct {
	SlotID         string            `json:"slot_id"`
	SlotDate       string            `json:"slot_date"`
	StartTime      string            `json:"start_time"`
	Location       string            `json:"location"`
	TestType       string            `json:"test_type"`
	Status         entity.SlotStatus `json:"status"`
	Capacity       int               `json:"capacity"`
	BookedCount    int               `json:"booked_count"`
	UtilizationPct float64           `json:"utilization_pct"`
}

type UtilizationReportResponse struct {
	From  string                    `json:"from"`
	To    string                    `json:"to"`
	Slots []SlotUtilizationResponse `json:"slots"`
}
