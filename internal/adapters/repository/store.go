// Package repository defines the catalog store contract and errors.
//
// The store is the single shared-state boundary of the service: every
// screen-facing collaborator reads and writes the catalog through this
// narrow contract, and the recommendation engine itself never touches
// it — candidates are always passed in as plain values.
package repository

import (
	"context"

	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/types"
)

// SupplierFilter narrows supplier listings. Zero values match everything.
type SupplierFilter struct {
	Category string // exact category label
	Location string // substring of the supplier location
	Search   string // case-folded substring over name, description and tags
}

// Store provides read/write access to the catalog state.
type Store interface {
	// PutSupplier inserts or replaces a supplier, assigning an ID when empty.
	PutSupplier(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	// Supplier returns one supplier by id. Returns ErrNotFound if unknown.
	Supplier(ctx context.Context, id string) (*model.Supplier, error)
	// Suppliers lists suppliers in insertion order, narrowed by filter.
	Suppliers(ctx context.Context, filter SupplierFilter) ([]*model.Supplier, error)
	// DeleteSupplier removes a supplier by id. Returns ErrNotFound if unknown.
	DeleteSupplier(ctx context.Context, id string) error

	// PutEvent inserts or replaces an event, assigning an ID when empty.
	PutEvent(ctx context.Context, e *model.Event) (*model.Event, error)
	// Event returns one event by id. Returns ErrNotFound if unknown.
	Event(ctx context.Context, id string) (*model.Event, error)
	// Events lists events in insertion order.
	Events(ctx context.Context) ([]*model.Event, error)
	// DeleteEvent removes an event by id. Returns ErrNotFound if unknown.
	DeleteEvent(ctx context.Context, id string) error

	// PutOffer inserts or replaces an offer, assigning an ID when empty.
	PutOffer(ctx context.Context, o *model.Offer) (*model.Offer, error)
	// Offer returns one offer by id. Returns ErrNotFound if unknown.
	Offer(ctx context.Context, id string) (*model.Offer, error)
	// Offers lists offers in insertion order; status "" matches all.
	Offers(ctx context.Context, status model.OfferStatus) ([]*model.Offer, error)

	// PutVerification inserts or replaces a verification request.
	PutVerification(ctx context.Context, v *model.VerificationRequest) (*model.VerificationRequest, error)
	// Verification returns one request by id. Returns ErrNotFound if unknown.
	Verification(ctx context.Context, id string) (*model.VerificationRequest, error)
	// Verifications lists requests in insertion order; status "" matches all.
	Verifications(ctx context.Context, status model.VerificationStatus) ([]*model.VerificationRequest, error)

	// PutRecommendations caches the computed recommendations for an event.
	PutRecommendations(ctx context.Context, eventID string, recs []types.Recommendation) error
	// Recommendations returns the cached entry, or ok=false when absent.
	Recommendations(ctx context.Context, eventID string) ([]types.Recommendation, bool)
	// InvalidateRecommendations drops cached entries; an empty eventID
	// drops the whole cache (used when the supplier pool changes).
	InvalidateRecommendations(ctx context.Context, eventID string)

	// Counts returns the number of suppliers, events and offers tracked.
	Counts(ctx context.Context) (suppliers, events, offers int)
}
