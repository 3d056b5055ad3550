package api

import (
	"context"
	"net/http"

	"github.com/planora/planora/internal/domain/model"
)

// VerificationDependencies defines the interface for verification operations.
type VerificationDependencies interface {
	SubmitVerification(ctx context.Context, v *model.VerificationRequest) (*model.VerificationRequest, error)
	Verification(ctx context.Context, id string) (*model.VerificationRequest, error)
	Verifications(ctx context.Context, status model.VerificationStatus) ([]*model.VerificationRequest, error)
	ReviewVerification(ctx context.Context, id string, approve bool) (*model.VerificationRequest, error)
}

// VerificationsHandler handles verification requests.
type VerificationsHandler struct {
	deps VerificationDependencies
}

// NewVerificationsHandler creates a new verifications handler.
func NewVerificationsHandler(deps VerificationDependencies) *VerificationsHandler {
	return &VerificationsHandler{deps: deps}
}

// verificationRequest mirrors the OpenAPI schema for POST /verifications.
type verificationRequest struct {
	SupplierID     string   `json:"supplier_id" validate:"required"`
	BusinessName   string   `json:"business_name" validate:"required"`
	BusinessAddr   string   `json:"business_address"`
	TaxID          string   `json:"tax_id"`
	LicenseNumber  string   `json:"license_number"`
	ContactPerson  string   `json:"contact_person"`
	ContactEmail   string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   string   `json:"contact_phone"`
	Documents      []string `json:"documents"`
	AdditionalInfo string   `json:"additional_info"`
}

type reviewRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

// HandleSubmit handles POST /verifications requests.
func (h *VerificationsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_verification"

	var req verificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.SubmitVerification(r.Context(), &model.VerificationRequest{
		SupplierID:     req.SupplierID,
		BusinessName:   req.BusinessName,
		BusinessAddr:   req.BusinessAddr,
		TaxID:          req.TaxID,
		LicenseNumber:  req.LicenseNumber,
		ContactPerson:  req.ContactPerson,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Documents:      req.Documents,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, newVerificationView(created))
}

// HandleList handles GET /verifications?status=S requests.
func (h *VerificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_verifications"

	status := model.VerificationStatus(r.URL.Query().Get("status"))
	switch status {
	case "", model.VerificationPending, model.VerificationApproved, model.VerificationRejected:
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	requests, err := h.deps.Verifications(r.Context(), status)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	views := make([]verificationView, len(requests))
	for i, v := range requests {
		views[i] = newVerificationView(v)
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGet handles GET /verifications/{id} requests.
func (h *VerificationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_verification"

	req, err := h.deps.Verification(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newVerificationView(req))
}

// HandleReview handles POST /verifications/{id}/review requests.
func (h *VerificationsHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	const op = "api.review_verification"

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	reviewed, err := h.deps.ReviewVerification(r.Context(), r.PathValue("id"), *req.Approve)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newVerificationView(reviewed))
}
