package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/types"
	"github.com/planora/planora/pkg/metrics"
)

// MemStore implements Store with mutex-guarded in-memory maps. Listing
// order is insertion order, so ties downstream stay deterministic.
// Values are copied on the way in and out; callers never share memory
// with the store.
type MemStore struct {
	mu sync.RWMutex

	suppliers     map[string]model.Supplier
	supplierOrder []string

	events     map[string]model.Event
	eventOrder []string

	offers     map[string]model.Offer
	offerOrder []string

	verifications     map[string]model.VerificationRequest
	verificationOrder []string

	recs map[string][]types.Recommendation

	newID func() string
}

// NewMemStore creates an empty in-memory catalog store.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		suppliers:     make(map[string]model.Supplier),
		events:        make(map[string]model.Event),
		offers:        make(map[string]model.Offer),
		verifications: make(map[string]model.VerificationRequest),
		recs:          make(map[string][]types.Recommendation),
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.updateGauges()
	return s
}

// PutSupplier inserts or replaces a supplier, assigning an ID when empty.
func (s *MemStore) PutSupplier(ctx context.Context, sup *model.Supplier) (*model.Supplier, error) {
	if sup == nil {
		return nil, ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *sup
	if stored.ID == "" {
		stored.ID = s.newID()
	}
	if _, exists := s.suppliers[stored.ID]; !exists {
		s.supplierOrder = append(s.supplierOrder, stored.ID)
	}
	s.suppliers[stored.ID] = stored
	s.updateGauges()

	out := stored
	return &out, nil
}

// Supplier returns one supplier by id.
func (s *MemStore) Supplier(ctx context.Context, id string) (*model.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sup, ok := s.suppliers[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := sup
	return &out, nil
}

// Suppliers lists suppliers in insertion order, narrowed by filter.
func (s *MemStore) Suppliers(ctx context.Context, filter SupplierFilter) ([]*model.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Supplier, 0, len(s.supplierOrder))
	for _, id := range s.supplierOrder {
		sup := s.suppliers[id]
		if !matchesFilter(&sup, filter) {
			continue
		}
		cp := sup
		out = append(out, &cp)
	}
	return out, nil
}

// DeleteSupplier removes a supplier by id.
func (s *MemStore) DeleteSupplier(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suppliers[id]; !ok {
		return ErrNotFound
	}
	delete(s.suppliers, id)
	s.supplierOrder = removeID(s.supplierOrder, id)
	s.updateGauges()
	return nil
}

// PutEvent inserts or replaces an event, assigning an ID when empty.
func (s *MemStore) PutEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	if e == nil {
		return nil, ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *e
	if stored.ID == "" {
		stored.ID = s.newID()
	}
	stored.SupplierIDs = append([]string(nil), e.SupplierIDs...)
	if _, exists := s.events[stored.ID]; !exists {
		s.eventOrder = append(s.eventOrder, stored.ID)
	}
	s.events[stored.ID] = stored
	s.updateGauges()

	out := stored
	return &out, nil
}

// Event returns one event by id.
func (s *MemStore) Event(ctx context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := e
	out.SupplierIDs = append([]string(nil), e.SupplierIDs...)
	return &out, nil
}

// Events lists events in insertion order.
func (s *MemStore) Events(ctx context.Context) ([]*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Event, 0, len(s.eventOrder))
	for _, id := range s.eventOrder {
		e := s.events[id]
		cp := e
		cp.SupplierIDs = append([]string(nil), e.SupplierIDs...)
		out = append(out, &cp)
	}
	return out, nil
}

// DeleteEvent removes an event and its cached recommendations.
func (s *MemStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	delete(s.recs, id)
	s.eventOrder = removeID(s.eventOrder, id)
	s.updateGauges()
	return nil
}

// PutOffer inserts or replaces an offer, assigning an ID when empty.
func (s *MemStore) PutOffer(ctx context.Context, o *model.Offer) (*model.Offer, error) {
	if o == nil {
		return nil, ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *o
	if stored.ID == "" {
		stored.ID = s.newID()
	}
	stored.Services = append([]string(nil), o.Services...)
	if _, exists := s.offers[stored.ID]; !exists {
		s.offerOrder = append(s.offerOrder, stored.ID)
	}
	s.offers[stored.ID] = stored
	s.updateGauges()

	out := stored
	return &out, nil
}

// Offer returns one offer by id.
func (s *MemStore) Offer(ctx context.Context, id string) (*model.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offers[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := o
	out.Services = append([]string(nil), o.Services...)
	return &out, nil
}

// Offers lists offers in insertion order; status "" matches all.
func (s *MemStore) Offers(ctx context.Context, status model.OfferStatus) ([]*model.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Offer, 0, len(s.offerOrder))
	for _, id := range s.offerOrder {
		o := s.offers[id]
		if status != "" && o.Status != status {
			continue
		}
		cp := o
		cp.Services = append([]string(nil), o.Services...)
		out = append(out, &cp)
	}
	return out, nil
}

// PutVerification inserts or replaces a verification request.
func (s *MemStore) PutVerification(ctx context.Context, v *model.VerificationRequest) (*model.VerificationRequest, error) {
	if v == nil {
		return nil, ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *v
	if stored.ID == "" {
		stored.ID = s.newID()
	}
	stored.Documents = append([]string(nil), v.Documents...)
	if _, exists := s.verifications[stored.ID]; !exists {
		s.verificationOrder = append(s.verificationOrder, stored.ID)
	}
	s.verifications[stored.ID] = stored

	out := stored
	return &out, nil
}

// Verification returns one request by id.
func (s *MemStore) Verification(ctx context.Context, id string) (*model.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.verifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := v
	out.Documents = append([]string(nil), v.Documents...)
	return &out, nil
}

// Verifications lists requests in insertion order; status "" matches all.
func (s *MemStore) Verifications(ctx context.Context, status model.VerificationStatus) ([]*model.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.VerificationRequest, 0, len(s.verificationOrder))
	for _, id := range s.verificationOrder {
		v := s.verifications[id]
		if status != "" && v.Status != status {
			continue
		}
		cp := v
		cp.Documents = append([]string(nil), v.Documents...)
		out = append(out, &cp)
	}
	return out, nil
}

// PutRecommendations caches the computed recommendations for an event.
func (s *MemStore) PutRecommendations(ctx context.Context, eventID string, recs []types.Recommendation) error {
	if eventID == "" {
		return ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs[eventID] = append([]types.Recommendation(nil), recs...)
	metrics.UpdateRecommendationCacheSize(len(s.recs))
	return nil
}

// Recommendations returns the cached entry, or ok=false when absent.
func (s *MemStore) Recommendations(ctx context.Context, eventID string) ([]types.Recommendation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs, ok := s.recs[eventID]
	if !ok {
		return nil, false
	}
	return append([]types.Recommendation(nil), recs...), true
}

// InvalidateRecommendations drops cached entries; an empty eventID
// drops the whole cache.
func (s *MemStore) InvalidateRecommendations(ctx context.Context, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if eventID == "" {
		s.recs = make(map[string][]types.Recommendation)
	} else {
		delete(s.recs, eventID)
	}
	metrics.UpdateRecommendationCacheSize(len(s.recs))
}

// Counts returns the number of suppliers, events and offers tracked.
func (s *MemStore) Counts(ctx context.Context) (int, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.suppliers), len(s.events), len(s.offers)
}

// updateGauges pushes catalog sizes to the metrics registry.
// Callers must hold the write lock.
func (s *MemStore) updateGauges() {
	metrics.UpdateCatalogSuppliers(len(s.suppliers))
	metrics.UpdateCatalogEvents(len(s.events))
	metrics.UpdateCatalogOffers(len(s.offers))
}

func matchesFilter(sup *model.Supplier, filter SupplierFilter) bool {
	if filter.Category != "" && sup.Category != filter.Category {
		return false
	}
	if filter.Location != "" && !strings.Contains(strings.ToLower(sup.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(sup.Name + " " + sup.Description + " " + strings.Join(sup.Tags, " "))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func removeID(order []string, id string) []string {
	for i, candidate := range order {
		if candidate == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
