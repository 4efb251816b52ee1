package rest

import (
	"net/http"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/port/usecases_port"
)

type AnalyticsHandler struct {
	analyticsUC usecases_port.AnalyticsUseCase
}

func NewAnalyticsHandler(analyticsUC usecases_port.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUC: analyticsUC}
}

// Dashboard обрабатывает GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	stats, err := h.analyticsUC.Dashboard(r.Context())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to build dashboard stats")
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}

// Properties обрабатывает GET /api/analytics/properties
func (h *AnalyticsHandler) Properties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	stats, err := h.analyticsUC.Properties(r.Context())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to build property analytics")
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}

// Revenue обрабатывает GET /api/analytics/revenue
func (h *AnalyticsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	report, err := h.analyticsUC.Revenue(r.Context())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to build revenue report")
		return
	}
	RespondWithJSON(w, http.StatusOK, report)
}

// Performance обрабатывает GET /api/analytics/performance
func (h *AnalyticsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	rows, err := h.analyticsUC.Performance(r.Context())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to build agent performance")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"agents": rows,
	})
}
