// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	repository "github.com/planora/planora/internal/adapters/repository"
	service "github.com/planora/planora/internal/app"
	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SupplierDependencies
	EventDependencies
	OfferDependencies
	VerificationDependencies
	RecommendationDependencies
	AnalyticsDependencies
}

// Recommendation mirrors the read shape returned by recommendation queries.
type Recommendation = types.Recommendation

// validate is the shared request validator.
var validate = validator.New() //nolint:gochecknoglobals // validator instances are safe for concurrent use

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	suppliersHandler     *SuppliersHandler
	eventsHandler        *EventsHandler
	offersHandler        *OffersHandler
	verificationsHandler *VerificationsHandler
	recommendHandler     *RecommendationsHandler
	analyticsHandler     *AnalyticsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxRecommendationLimit int) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		suppliersHandler:     NewSuppliersHandler(deps),
		eventsHandler:        NewEventsHandler(deps, deps, maxRecommendationLimit),
		offersHandler:        NewOffersHandler(deps),
		verificationsHandler: NewVerificationsHandler(deps),
		recommendHandler:     NewRecommendationsHandler(deps, maxRecommendationLimit),
		analyticsHandler:     NewAnalyticsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /suppliers", MetricsMiddleware(s.suppliersHandler.HandleCreate, "suppliers"))
	mux.HandleFunc("GET /suppliers", MetricsMiddleware(s.suppliersHandler.HandleList, "suppliers"))
	mux.HandleFunc("GET /suppliers/{id}", MetricsMiddleware(s.suppliersHandler.HandleGet, "supplier"))
	mux.HandleFunc("PUT /suppliers/{id}", MetricsMiddleware(s.suppliersHandler.HandleUpdate, "supplier"))
	mux.HandleFunc("DELETE /suppliers/{id}", MetricsMiddleware(s.suppliersHandler.HandleDelete, "supplier"))

	mux.HandleFunc("POST /events", MetricsMiddleware(s.eventsHandler.HandleCreate, "events"))
	mux.HandleFunc("GET /events", MetricsMiddleware(s.eventsHandler.HandleList, "events"))
	mux.HandleFunc("GET /events/{id}", MetricsMiddleware(s.eventsHandler.HandleGet, "event"))
	mux.HandleFunc("PUT /events/{id}", MetricsMiddleware(s.eventsHandler.HandleUpdate, "event"))
	mux.HandleFunc("DELETE /events/{id}", MetricsMiddleware(s.eventsHandler.HandleDelete, "event"))
	mux.HandleFunc("GET /events/{id}/recommendations", MetricsMiddleware(s.eventsHandler.HandleRecommendations, "event_recommendations"))
	mux.HandleFunc("POST /events/{id}/suppliers", MetricsMiddleware(s.eventsHandler.HandleAttachSupplier, "event_suppliers"))

	mux.HandleFunc("POST /offers", MetricsMiddleware(s.offersHandler.HandleCreate, "offers"))
	mux.HandleFunc("GET /offers", MetricsMiddleware(s.offersHandler.HandleList, "offers"))
	mux.HandleFunc("GET /offers/{id}", MetricsMiddleware(s.offersHandler.HandleGet, "offer"))
	mux.HandleFunc("POST /offers/{id}/decision", MetricsMiddleware(s.offersHandler.HandleDecision, "offer_decision"))
	mux.HandleFunc("POST /offers/{id}/payment", MetricsMiddleware(s.offersHandler.HandlePayment, "offer_payment"))

	mux.HandleFunc("POST /verifications", MetricsMiddleware(s.verificationsHandler.HandleSubmit, "verifications"))
	mux.HandleFunc("GET /verifications", MetricsMiddleware(s.verificationsHandler.HandleList, "verifications"))
	mux.HandleFunc("GET /verifications/{id}", MetricsMiddleware(s.verificationsHandler.HandleGet, "verification"))
	mux.HandleFunc("POST /verifications/{id}/review", MetricsMiddleware(s.verificationsHandler.HandleReview, "verification_review"))

	mux.HandleFunc("POST /recommendations", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommendations"))
	mux.HandleFunc("GET /analytics", MetricsMiddleware(s.analyticsHandler.HandleReport, "analytics"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON decodes and validates a request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return NewKind("api.decode", ErrBadRequest)
	}
	if err := validate.Struct(v); err != nil {
		return Wrap("api.validate", err)
	}
	return nil
}

// writeDomainError translates service errors to HTTP responses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, err))
	case errors.Is(err, service.ErrMissingReference):
		writeError(w, http.StatusUnprocessableEntity, "missing_reference", NewKind(op, err))
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", NewKind(op, err))
	case errors.Is(err, service.ErrBadPaymentMethod):
		writeError(w, http.StatusBadRequest, "bad_payment_method", NewKind(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// contactView is the wire shape of a supplier contact block.
type contactView struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// supplierView is the wire shape of a catalog supplier.
type supplierView struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Description  string      `json:"description,omitempty"`
	Rating       float64     `json:"rating"`
	Reviews      int         `json:"reviews"`
	Location     string      `json:"location,omitempty"`
	Price        string      `json:"price,omitempty"`
	Availability string      `json:"availability,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	Services     []string    `json:"services,omitempty"`
	Contact      contactView `json:"contact"`
	Verified     bool        `json:"verified"`
}

func newSupplierView(s *model.Supplier) supplierView {
	return supplierView{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		Description:  s.Description,
		Rating:       s.Rating,
		Reviews:      s.Reviews,
		Location:     s.Location,
		Price:        s.Price,
		Availability: s.Availability,
		Tags:         s.Tags,
		Services:     s.Services,
		Contact: contactView{
			Email:   s.Contact.Email,
			Phone:   s.Contact.Phone,
			Website: s.Contact.Website,
		},
		Verified: s.Verified,
	}
}

// eventView is the wire shape of a planned event.
type eventView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	Location    string   `json:"location,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Attendees   int      `json:"attendees"`
	Status      string   `json:"status"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	Progress    int      `json:"progress"`
	SupplierIDs []string `json:"supplier_ids,omitempty"`
}

func newEventView(e *model.Event) eventView {
	return eventView{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Budget:      e.Budget,
		Attendees:   e.Attendees,
		Status:      string(e.Status),
		Description: e.Description,
		Type:        e.Type,
		Progress:    e.Progress,
		SupplierIDs: e.SupplierIDs,
	}
}

// offerView is the wire shape of a supplier offer.
type offerView struct {
	ID           string   `json:"id"`
	SupplierID   string   `json:"supplier_id"`
	SupplierName string   `json:"supplier_name"`
	EventID      string   `json:"event_id"`
	EventName    string   `json:"event_name"`
	Services     []string `json:"services,omitempty"`
	Amount       float64  `json:"amount"`
	Status       string   `json:"status"`
	Plan         string   `json:"plan"`
	CreatedAt    string   `json:"created_at,omitempty"`
	Description  string   `json:"description,omitempty"`
}

func newOfferView(o *model.Offer) offerView {
	return offerView{
		ID:           o.ID,
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		EventID:      o.EventID,
		EventName:    o.EventName,
		Services:     o.Services,
		Amount:       o.Amount,
		Status:       string(o.Status),
		Plan:         string(o.Plan()),
		CreatedAt:    o.CreatedAt,
		Description:  o.Description,
	}
}

// verificationView is the wire shape of a verification request.
type verificationView struct {
	ID             string   `json:"id"`
	SupplierID     string   `json:"supplier_id"`
	SupplierName   string   `json:"supplier_name,omitempty"`
	BusinessName   string   `json:"business_name,omitempty"`
	BusinessAddr   string   `json:"business_address,omitempty"`
	TaxID          string   `json:"tax_id,omitempty"`
	LicenseNumber  string   `json:"license_number,omitempty"`
	ContactPerson  string   `json:"contact_person,omitempty"`
	ContactEmail   string   `json:"contact_email,omitempty"`
	ContactPhone   string   `json:"contact_phone,omitempty"`
	Documents      []string `json:"documents,omitempty"`
	AdditionalInfo string   `json:"additional_info,omitempty"`
	Status         string   `json:"status"`
	SubmittedAt    string   `json:"submitted_at,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

func newVerificationView(v *model.VerificationRequest) verificationView {
	return verificationView{
		ID:             v.ID,
		SupplierID:     v.SupplierID,
		SupplierName:   v.SupplierName,
		BusinessName:   v.BusinessName,
		BusinessAddr:   v.BusinessAddr,
		TaxID:          v.TaxID,
		LicenseNumber:  v.LicenseNumber,
		ContactPerson:  v.ContactPerson,
		ContactEmail:   v.ContactEmail,
		ContactPhone:   v.ContactPhone,
		Documents:      v.Documents,
		AdditionalInfo: v.AdditionalInfo,
		Status:         string(v.Status),
		SubmittedAt:    v.SubmittedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
