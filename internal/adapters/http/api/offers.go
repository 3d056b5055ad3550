package api

import (
	"context"
	"net/http"

	"github.com/planora/planora/internal/domain/model"
)

// OfferDependencies defines the interface for offer operations.
type OfferDependencies interface {
	CreateOffer(ctx context.Context, o *model.Offer) (*model.Offer, error)
	Offer(ctx context.Context, id string) (*model.Offer, error)
	Offers(ctx context.Context, status model.OfferStatus) ([]*model.Offer, error)
	DecideOffer(ctx context.Context, id string, approve bool) (*model.Offer, error)
	PayOffer(ctx context.Context, id string, method model.PaymentMethod) (*model.Offer, error)
}

// OffersHandler handles offer requests.
type OffersHandler struct {
	deps OfferDependencies
}

// NewOffersHandler creates a new offers handler.
func NewOffersHandler(deps OfferDependencies) *OffersHandler {
	return &OffersHandler{deps: deps}
}

// offerRequest mirrors the OpenAPI schema for POST /offers.
type offerRequest struct {
	SupplierID  string   `json:"supplier_id" validate:"required"`
	EventID     string   `json:"event_id" validate:"required"`
	Services    []string `json:"services"`
	Amount      float64  `json:"amount" validate:"gt=0"`
	Description string   `json:"description"`
}

type decisionRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

type paymentRequest struct {
	Method string `json:"method" validate:"required"`
}

// HandleCreate handles POST /offers requests.
func (h *OffersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_offer"

	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.CreateOffer(r.Context(), &model.Offer{
		SupplierID:  req.SupplierID,
		EventID:     req.EventID,
		Services:    req.Services,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, newOfferView(created))
}

// HandleList handles GET /offers?status=S requests.
func (h *OffersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_offers"

	status := model.OfferStatus(r.URL.Query().Get("status"))
	switch status {
	case "", model.OfferPending, model.OfferApproved, model.OfferRejected, model.OfferPaid:
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	offers, err := h.deps.Offers(r.Context(), status)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	views := make([]offerView, len(offers))
	for i, o := range offers {
		views[i] = newOfferView(o)
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGet handles GET /offers/{id} requests.
func (h *OffersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_offer"

	offer, err := h.deps.Offer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newOfferView(offer))
}

// HandleDecision handles POST /offers/{id}/decision requests.
func (h *OffersHandler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	const op = "api.offer_decision"

	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	decided, err := h.deps.DecideOffer(r.Context(), r.PathValue("id"), *req.Approve)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newOfferView(decided))
}

// HandlePayment handles POST /offers/{id}/payment requests.
func (h *OffersHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	const op = "api.offer_payment"

	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	paid, err := h.deps.PayOffer(r.Context(), r.PathValue("id"), model.PaymentMethod(req.Method))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newOfferView(paid))
}
