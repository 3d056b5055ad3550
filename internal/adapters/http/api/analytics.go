package api

import (
	"context"
	"net/http"

	"github.com/planora/planora/internal/domain/types"
)

// AnalyticsDependencies defines the interface for the reporting endpoint.
type AnalyticsDependencies interface {
	Analytics(ctx context.Context) (*types.AnalyticsReport, error)
}

// AnalyticsHandler handles analytics requests.
type AnalyticsHandler struct {
	deps AnalyticsDependencies
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsDependencies) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

// HandleReport handles GET /analytics requests.
func (h *AnalyticsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.analytics"

	report, err := h.deps.Analytics(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
