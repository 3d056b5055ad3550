package api

import (
	"context"
	"net/http"

	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/types"
)

// RecommendationDependencies defines the interface for recommendation
// queries.
type RecommendationDependencies interface {
	// RecommendationsFor ranks catalog suppliers for a stored event.
	RecommendationsFor(ctx context.Context, eventID string, limit int) ([]types.Recommendation, error)

	// Recommend ranks catalog suppliers for an ad-hoc event payload.
	Recommend(ctx context.Context, event *model.Event, limit int) ([]types.Recommendation, error)
}

// RecommendationsHandler handles ad-hoc recommendation requests.
type RecommendationsHandler struct {
	deps     RecommendationDependencies
	maxLimit int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, maxLimit int) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// recommendRequest mirrors the OpenAPI schema for POST /recommendations.
// The event is described inline and never stored; missing budget and
// attendee figures fall back to service defaults.
type recommendRequest struct {
	Name        string `json:"name" validate:"required"`
	Location    string `json:"location"`
	Budget      string `json:"budget"`
	Attendees   int    `json:"attendees" validate:"gte=0"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// HandleRecommend handles POST /recommendations?limit=N requests.
func (h *RecommendationsHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"

	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, err))
		return
	}

	var req recommendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	event := &model.Event{
		Name:        req.Name,
		Location:    req.Location,
		Budget:      req.Budget,
		Attendees:   req.Attendees,
		Description: req.Description,
		Type:        req.Type,
	}

	recs, err := h.deps.Recommend(r.Context(), event, limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
