package adaptor

import (
	"net/http"

	"exam-booking/internal/usecase"
	"exam-booking/pkg/utils"

	"go.uber.org/zap"
)

type StatsHandler struct {
	service usecase.StatsService
	log     *zap.Logger
}

func NewStatsHandler(service usecase.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log.With(zap.String("handler", "stats")),
	}
}

// Overview handles GET /api/admin/stats
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "stats overview")
		return
	}

	utils.ResponseSuccess(w, "success", overview)
}

// Revenue handles GET /api/admin/stats/revenue
func (h *StatsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.service.Revenue(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "stats revenue")
		return
	}

	utils.ResponseSuccess(w, "success", revenue)
}

// UtilizationReport handles GET /api/admin/stats/utilization?from=&to=
func (h *StatsHandler) UtilizationReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	report, err := h.service.UtilizationReport(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		handleServiceError(h.log, w, err, "utilization report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}
