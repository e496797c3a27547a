package wire

import (
	"exam-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStats(r chi.Router, statsHandler *adaptor.StatsHandler) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/stats", func(r chi.Router) {
		// GET /api/admin/stats - status counts, totals, utilization rate
		r.Get("/", statsHandler.Overview)

		// GET /api/admin/stats/revenue - trailing 7/30 day revenue
		r.Get("/revenue", statsHandler.Revenue)

		// GET /api/admin/stats/utilization?from=&to= - per-slot report
		r.Get("/utilization", statsHandler.UtilizationReport)
	})
}
