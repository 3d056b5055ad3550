package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/recommend"
)

// EventDependencies defines the interface for event operations.
type EventDependencies interface {
	CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, e *model.Event) (*model.Event, error)
	Event(ctx context.Context, id string) (*model.Event, error)
	Events(ctx context.Context) ([]*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	AttachSupplier(ctx context.Context, eventID, supplierID string) (*model.Event, error)
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps     EventDependencies
	recs     RecommendationDependencies
	maxLimit int
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies, recs RecommendationDependencies, maxLimit int) *EventsHandler {
	return &EventsHandler{
		deps:     deps,
		recs:     recs,
		maxLimit: maxLimit,
	}
}

// eventRequest mirrors the OpenAPI schema for event writes.
type eventRequest struct {
	Name        string `json:"name" validate:"required"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Budget      string `json:"budget"`
	Attendees   int    `json:"attendees" validate:"gte=0"`
	Status      string `json:"status" validate:"omitempty,oneof=Planning Confirmed Completed"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Progress    int    `json:"progress" validate:"gte=0,lte=100"`
}

func (req *eventRequest) toModel() *model.Event {
	return &model.Event{
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Budget:      req.Budget,
		Attendees:   req.Attendees,
		Status:      model.EventStatus(req.Status),
		Description: req.Description,
		Type:        req.Type,
		Progress:    req.Progress,
	}
}

type attachSupplierRequest struct {
	SupplierID string `json:"supplier_id" validate:"required"`
}

// HandleCreate handles POST /events requests.
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_event"

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.CreateEvent(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, newEventView(created))
}

// HandleList handles GET /events requests.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"

	events, err := h.deps.Events(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	views := make([]eventView, len(events))
	for i, e := range events {
		views[i] = newEventView(e)
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGet handles GET /events/{id} requests.
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_event"

	event, err := h.deps.Event(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newEventView(event))
}

// HandleUpdate handles PUT /events/{id} requests.
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_event"

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	updated, err := h.deps.UpdateEvent(r.Context(), r.PathValue("id"), req.toModel())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newEventView(updated))
}

// HandleDelete handles DELETE /events/{id} requests.
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_event"

	if err := h.deps.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRecommendations handles GET /events/{id}/recommendations?limit=N
// requests.
func (h *EventsHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.event_recommendations"

	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, err))
		return
	}

	recs, err := h.recs.RecommendationsFor(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// HandleAttachSupplier handles POST /events/{id}/suppliers requests.
func (h *EventsHandler) HandleAttachSupplier(w http.ResponseWriter, r *http.Request) {
	const op = "api.attach_supplier"

	var req attachSupplierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	updated, err := h.deps.AttachSupplier(r.Context(), r.PathValue("id"), req.SupplierID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newEventView(updated))
}

// parseLimit reads the limit query parameter, applying the engine default
// when absent and the configured cap always.
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return recommend.DefaultLimit, nil
	}

	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		return 0, ErrBadRequest
	}
	if n > maxLimit {
		return 0, ErrBadRequest
	}
	return n, nil
}
