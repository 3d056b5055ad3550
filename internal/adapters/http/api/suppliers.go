package api

import (
	"context"
	"net/http"

	repository "github.com/planora/planora/internal/adapters/repository"
	"github.com/planora/planora/internal/domain/model"
)

// SupplierDependencies defines the interface for supplier catalog operations.
type SupplierDependencies interface {
	CreateSupplier(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, s *model.Supplier) (*model.Supplier, error)
	Supplier(ctx context.Context, id string) (*model.Supplier, error)
	Suppliers(ctx context.Context, filter repository.SupplierFilter) ([]*model.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

// SuppliersHandler handles supplier catalog requests.
type SuppliersHandler struct {
	deps SupplierDependencies
}

// NewSuppliersHandler creates a new suppliers handler.
func NewSuppliersHandler(deps SupplierDependencies) *SuppliersHandler {
	return &SuppliersHandler{deps: deps}
}

// supplierRequest mirrors the OpenAPI schema for supplier writes.
type supplierRequest struct {
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Description  string   `json:"description"`
	Rating       float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews      int      `json:"reviews" validate:"gte=0"`
	Location     string   `json:"location"`
	Price        string   `json:"price"`
	Availability string   `json:"availability"`
	Tags         []string `json:"tags"`
	Services     []string `json:"services"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone"`
	Website      string   `json:"website"`
}

func (req *supplierRequest) toModel() *model.Supplier {
	return &model.Supplier{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Rating:       req.Rating,
		Reviews:      req.Reviews,
		Location:     req.Location,
		Price:        req.Price,
		Availability: req.Availability,
		Tags:         req.Tags,
		Services:     req.Services,
		Contact: model.Contact{
			Email:   req.Email,
			Phone:   req.Phone,
			Website: req.Website,
		},
	}
}

// HandleCreate handles POST /suppliers requests.
func (h *SuppliersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_supplier"

	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.CreateSupplier(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSupplierView(created))
}

// HandleList handles GET /suppliers requests. Category, location and
// search query parameters narrow the listing.
func (h *SuppliersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_suppliers"

	filter := repository.SupplierFilter{
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Search:   r.URL.Query().Get("search"),
	}

	suppliers, err := h.deps.Suppliers(r.Context(), filter)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	views := make([]supplierView, len(suppliers))
	for i, s := range suppliers {
		views[i] = newSupplierView(s)
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGet handles GET /suppliers/{id} requests.
func (h *SuppliersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_supplier"

	supplier, err := h.deps.Supplier(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newSupplierView(supplier))
}

// HandleUpdate handles PUT /suppliers/{id} requests.
func (h *SuppliersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_supplier"

	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	updated, err := h.deps.UpdateSupplier(r.Context(), r.PathValue("id"), req.toModel())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newSupplierView(updated))
}

// HandleDelete handles DELETE /suppliers/{id} requests.
func (h *SuppliersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_supplier"

	if err := h.deps.DeleteSupplier(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
