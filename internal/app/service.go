// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	refreshqueue "github.com/planora/planora/internal/adapters/mq/queue"
	workerpool "github.com/planora/planora/internal/adapters/mq/worker"
	repository "github.com/planora/planora/internal/adapters/repository"
	"github.com/planora/planora/internal/domain/dedupe"
	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/recommend"
	"github.com/planora/planora/internal/domain/types"
	"github.com/planora/planora/pkg/logger"
	"github.com/planora/planora/pkg/metrics"

	"github.com/google/uuid"
)

// Defaults substituted into incomplete events before scoring.
const (
	defaultBudgetText = "1000"
	defaultAttendees  = 50
)

const dateLayout = "2006-01-02"

// refreshDeps adapts the Service to the worker.Dependencies contract.
type refreshDeps struct {
	svc *Service
}

func (d *refreshDeps) Event(ctx context.Context, id string) (*model.Event, error) {
	return d.svc.store.Event(ctx, id)
}

func (d *refreshDeps) Suppliers(ctx context.Context) ([]*model.Supplier, error) {
	return d.svc.store.Suppliers(ctx, repository.SupplierFilter{})
}

func (d *refreshDeps) Recommend(_ context.Context, event *model.Event, suppliers []*model.Supplier, limit int) []types.Recommendation {
	return d.svc.recommendView(event, suppliers, limit)
}

func (d *refreshDeps) PutRecommendations(ctx context.Context, eventID string, recs []types.Recommendation) error {
	return d.svc.store.PutRecommendations(ctx, eventID, recs)
}

func (d *refreshDeps) Release(ctx context.Context, id string) {
	d.svc.deduper.Unrecord(ctx, id)
	metrics.UpdateDedupePending(d.svc.deduper.Size())
}

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	queue      refreshqueue.Queue
	engine     *recommend.Engine
	workerPool *workerpool.Pool

	// Configuration
	workerCount    int
	queueSize      int
	dedupeSize     int
	refreshLimit   int
	budgetFallback float64
	assumedGuests  int
	assumedHours   int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the refresh queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the pending-refresh set.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithRefreshLimit sets how many recommendations a refresh caches per event.
func WithRefreshLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.refreshLimit = limit
		}
	}
}

// WithBudgetFallback sets the budget assumed for unparseable budgets.
func WithBudgetFallback(v float64) Option {
	return func(s *Service) {
		if v > 0 {
			s.budgetFallback = v
		}
	}
}

// WithAssumedGuests sets the headcount multiplier for per-person prices.
func WithAssumedGuests(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.assumedGuests = n
		}
	}
}

// WithAssumedHours sets the duration multiplier for hourly prices.
func WithAssumedHours(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.assumedHours = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU() * 2,
		queueSize:      10000,
		dedupeSize:     50000,
		refreshLimit:   10,
		budgetFallback: 5000,
		assumedGuests:  100,
		assumedHours:   8,
		stopCh:         make(chan struct{}),
		logger:         nil, // resolved in Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	s.store = repository.NewMemStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = refreshqueue.NewInMemoryQueue(
		refreshqueue.WithCapacity(s.queueSize),
	)
	s.engine = recommend.NewEngine(
		recommend.WithBudgetFallback(s.budgetFallback),
		recommend.WithAssumedGuests(s.assumedGuests),
		recommend.WithAssumedHours(s.assumedHours),
	)

	s.workerPool = workerpool.NewPool(
		s.workerCount,
		s.queue,
		&refreshDeps{svc: s},
		workerpool.WithRefreshLimit(s.refreshLimit),
	)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommendation service...")

	// Closing the queue lets the workers drain before they exit.
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "recommendation service stopped")
}

// Supplier catalog operations.

// CreateSupplier adds a supplier to the catalog. Every cached
// recommendation set is invalidated: a new candidate can displace any
// ranking.
func (s *Service) CreateSupplier(ctx context.Context, sup *model.Supplier) (*model.Supplier, error) {
	created, err := s.store.PutSupplier(ctx, sup)
	if err != nil {
		return nil, err
	}
	s.store.InvalidateRecommendations(ctx, "")
	return created, nil
}

// UpdateSupplier replaces an existing supplier.
func (s *Service) UpdateSupplier(ctx context.Context, id string, sup *model.Supplier) (*model.Supplier, error) {
	if _, err := s.store.Supplier(ctx, id); err != nil {
		return nil, err
	}
	sup.ID = id
	updated, err := s.store.PutSupplier(ctx, sup)
	if err != nil {
		return nil, err
	}
	s.store.InvalidateRecommendations(ctx, "")
	return updated, nil
}

// Supplier returns one supplier by id.
func (s *Service) Supplier(ctx context.Context, id string) (*model.Supplier, error) {
	return s.store.Supplier(ctx, id)
}

// Suppliers lists suppliers, optionally narrowed by filter.
func (s *Service) Suppliers(ctx context.Context, filter repository.SupplierFilter) ([]*model.Supplier, error) {
	return s.store.Suppliers(ctx, filter)
}

// DeleteSupplier removes a supplier from the catalog.
func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	if err := s.store.DeleteSupplier(ctx, id); err != nil {
		return err
	}
	s.store.InvalidateRecommendations(ctx, "")
	return nil
}

// Event operations.

// CreateEvent adds an event and schedules its first recommendation refresh.
func (s *Service) CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	if e.Status == "" {
		e.Status = model.EventPlanning
	}
	created, err := s.store.PutEvent(ctx, e)
	if err != nil {
		return nil, err
	}
	s.requestRefresh(ctx, created.ID)
	return created, nil
}

// UpdateEvent replaces an existing event and schedules a refresh.
func (s *Service) UpdateEvent(ctx context.Context, id string, e *model.Event) (*model.Event, error) {
	if _, err := s.store.Event(ctx, id); err != nil {
		return nil, err
	}
	e.ID = id
	updated, err := s.store.PutEvent(ctx, e)
	if err != nil {
		return nil, err
	}
	s.store.InvalidateRecommendations(ctx, id)
	s.requestRefresh(ctx, id)
	return updated, nil
}

// Event returns one event by id.
func (s *Service) Event(ctx context.Context, id string) (*model.Event, error) {
	return s.store.Event(ctx, id)
}

// Events lists all events.
func (s *Service) Events(ctx context.Context) ([]*model.Event, error) {
	return s.store.Events(ctx)
}

// DeleteEvent removes an event and its cached recommendations.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}

// AttachSupplier links a supplier to an event's shortlist.
func (s *Service) AttachSupplier(ctx context.Context, eventID, supplierID string) (*model.Event, error) {
	if _, err := s.store.Supplier(ctx, supplierID); err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrMissingReference, supplierID)
	}
	event, err := s.store.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	for _, id := range event.SupplierIDs {
		if id == supplierID {
			return event, nil
		}
	}
	event.SupplierIDs = append(event.SupplierIDs, supplierID)

	updated, err := s.store.PutEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Recommendation operations.

// RecommendationsFor returns ranked suppliers for a stored event. Cached
// results from the background refresh are preferred; a miss falls back
// to a synchronous computation so reads never return stale emptiness.
func (s *Service) RecommendationsFor(ctx context.Context, eventID string, limit int) ([]types.Recommendation, error) {
	event, err := s.store.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.store.Recommendations(ctx, eventID); ok && limit <= len(cached) {
		metrics.RecordRecommendationServed("cache")
		return cached[:limit], nil
	}

	suppliers, err := s.store.Suppliers(ctx, repository.SupplierFilter{})
	if err != nil {
		return nil, err
	}

	metrics.RecordRecommendationServed("computed")
	return s.recommendView(event, suppliers, limit), nil
}

// Recommend ranks catalog suppliers for an ad-hoc event that is not
// stored anywhere.
func (s *Service) Recommend(ctx context.Context, event *model.Event, limit int) ([]types.Recommendation, error) {
	suppliers, err := s.store.Suppliers(ctx, repository.SupplierFilter{})
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendationServed("computed")
	return s.recommendView(event, suppliers, limit), nil
}

// Offer operations.

// CreateOffer records a supplier's bid for an event. Display names are
// resolved from the catalog when absent.
func (s *Service) CreateOffer(ctx context.Context, o *model.Offer) (*model.Offer, error) {
	sup, err := s.store.Supplier(ctx, o.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrMissingReference, o.SupplierID)
	}
	event, err := s.store.Event(ctx, o.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s", ErrMissingReference, o.EventID)
	}

	if o.SupplierName == "" {
		o.SupplierName = sup.Name
	}
	if o.EventName == "" {
		o.EventName = event.Name
	}
	if o.Status == "" {
		o.Status = model.OfferPending
	}
	if o.CreatedAt == "" {
		o.CreatedAt = time.Now().Format(dateLayout)
	}

	return s.store.PutOffer(ctx, o)
}

// Offer returns one offer by id.
func (s *Service) Offer(ctx context.Context, id string) (*model.Offer, error) {
	return s.store.Offer(ctx, id)
}

// Offers lists offers, optionally narrowed by status.
func (s *Service) Offers(ctx context.Context, status model.OfferStatus) ([]*model.Offer, error) {
	return s.store.Offers(ctx, status)
}

// DecideOffer approves or rejects a pending offer.
func (s *Service) DecideOffer(ctx context.Context, id string, approve bool) (*model.Offer, error) {
	offer, err := s.store.Offer(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.Status != model.OfferPending {
		return nil, fmt.Errorf("%w: offer %s is %s", ErrInvalidTransition, id, offer.Status)
	}

	if approve {
		offer.Status = model.OfferApproved
	} else {
		offer.Status = model.OfferRejected
	}
	return s.store.PutOffer(ctx, offer)
}

// PayOffer settles an approved offer with the given payment method.
func (s *Service) PayOffer(ctx context.Context, id string, method model.PaymentMethod) (*model.Offer, error) {
	switch method {
	case model.PaymentCreditCard, model.PaymentBankTransfer, model.PaymentPaypal:
	default:
		return nil, fmt.Errorf("%w: %s", ErrBadPaymentMethod, method)
	}

	offer, err := s.store.Offer(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.Status != model.OfferApproved {
		return nil, fmt.Errorf("%w: offer %s is %s", ErrInvalidTransition, id, offer.Status)
	}

	offer.Status = model.OfferPaid
	return s.store.PutOffer(ctx, offer)
}

// Verification operations.

// SubmitVerification files a supplier's verification request.
func (s *Service) SubmitVerification(ctx context.Context, v *model.VerificationRequest) (*model.VerificationRequest, error) {
	sup, err := s.store.Supplier(ctx, v.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrMissingReference, v.SupplierID)
	}

	if v.SupplierName == "" {
		v.SupplierName = sup.Name
	}
	v.Status = model.VerificationPending
	now := time.Now().Format(dateLayout)
	if v.SubmittedAt == "" {
		v.SubmittedAt = now
	}
	v.UpdatedAt = now

	return s.store.PutVerification(ctx, v)
}

// Verification returns one verification request by id.
func (s *Service) Verification(ctx context.Context, id string) (*model.VerificationRequest, error) {
	return s.store.Verification(ctx, id)
}

// Verifications lists requests, optionally narrowed by status.
func (s *Service) Verifications(ctx context.Context, status model.VerificationStatus) ([]*model.VerificationRequest, error) {
	return s.store.Verifications(ctx, status)
}

// ReviewVerification approves or rejects a pending verification request.
// Approval marks the supplier as verified.
func (s *Service) ReviewVerification(ctx context.Context, id string, approve bool) (*model.VerificationRequest, error) {
	req, err := s.store.Verification(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != model.VerificationPending {
		return nil, fmt.Errorf("%w: verification %s is %s", ErrInvalidTransition, id, req.Status)
	}

	if approve {
		req.Status = model.VerificationApproved
	} else {
		req.Status = model.VerificationRejected
	}
	req.UpdatedAt = time.Now().Format(dateLayout)

	reviewed, err := s.store.PutVerification(ctx, req)
	if err != nil {
		return nil, err
	}

	if approve {
		sup, err := s.store.Supplier(ctx, req.SupplierID)
		if err == nil {
			sup.Verified = true
			if _, err := s.store.PutSupplier(ctx, sup); err != nil {
				s.logger.Warn(ctx, "failed to mark supplier verified",
					logger.String("supplierID", req.SupplierID), logger.Error(err))
			}
		}
	}

	return reviewed, nil
}

// Analytics aggregates catalog health for the reporting endpoint.
func (s *Service) Analytics(ctx context.Context) (*types.AnalyticsReport, error) {
	suppliers, err := s.store.Suppliers(ctx, repository.SupplierFilter{})
	if err != nil {
		return nil, err
	}

	nSuppliers, nEvents, nOffers := s.store.Counts(ctx)

	pending, err := s.store.Verifications(ctx, model.VerificationPending)
	if err != nil {
		return nil, err
	}

	report := &types.AnalyticsReport{
		TotalSuppliers:       nSuppliers,
		TotalEvents:          nEvents,
		TotalOffers:          nOffers,
		PendingVerifications: len(pending),
		CategoryRatings:      categoryRatings(suppliers),
		BudgetAllocation:     nil,
	}

	if len(suppliers) > 0 {
		sum := 0.0
		for _, sup := range suppliers {
			sum += sup.Rating
		}
		report.AverageRating = sum / float64(len(suppliers))
	}

	approved, err := s.store.Offers(ctx, model.OfferApproved)
	if err != nil {
		return nil, err
	}
	report.BudgetAllocation = budgetAllocation(ctx, s.store, approved)

	return report, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		nSuppliers, nEvents, nOffers := s.store.Counts(ctx)

		stats["queueLength"] = queueLen
		stats["suppliers"] = nSuppliers
		stats["events"] = nEvents
		stats["offers"] = nOffers
		stats["pendingRefreshes"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
		metrics.UpdateDedupePending(s.deduper.Size())
	}

	return stats
}

// Size returns the current number of pending refresh slots.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// requestRefresh enqueues a recommendation refresh for one event, at
// most one in flight per event. A refused enqueue releases the slot so
// the next mutation can retry.
func (s *Service) requestRefresh(ctx context.Context, eventID string) {
	if s.deduper.SeenAndRecord(ctx, eventID) {
		s.logger.Debug(ctx, "refresh already pending", logger.String("eventID", eventID))
		return
	}
	metrics.UpdateDedupePending(s.deduper.Size())

	job := model.RefreshJob{
		JobID:   uuid.NewString(),
		EventID: eventID,
	}
	if !s.queue.Enqueue(ctx, job) {
		s.deduper.Unrecord(ctx, eventID)
		metrics.UpdateDedupePending(s.deduper.Size())
		s.logger.Warn(ctx, "refresh queue refused job", logger.String("eventID", eventID))
	}
}

// recommendView runs the engine over normalized input and converts the
// result to the wire shape.
func (s *Service) recommendView(event *model.Event, suppliers []*model.Supplier, limit int) []types.Recommendation {
	normalized := *event
	if normalized.Budget == "" {
		normalized.Budget = defaultBudgetText
	}
	if normalized.Attendees <= 0 {
		normalized.Attendees = defaultAttendees
	}

	recs := s.engine.Recommend(&normalized, suppliers, limit)

	views := make([]types.Recommendation, len(recs))
	for i, rec := range recs {
		views[i] = types.Recommendation{
			SupplierID: rec.Supplier.ID,
			Name:       rec.Supplier.Name,
			Category:   rec.Supplier.Category,
			Location:   rec.Supplier.Location,
			Price:      rec.Supplier.Price,
			Rating:     rec.Supplier.Rating,
			Reviews:    rec.Supplier.Reviews,
			Score:      rec.Score,
			Reason:     rec.Reason,
		}
	}
	return views
}

// categoryRatings aggregates supplier ratings per category, sorted by
// category name for stable output.
func categoryRatings(suppliers []*model.Supplier) []types.CategoryRating {
	byCategory := make(map[string][]float64)
	for _, sup := range suppliers {
		byCategory[sup.Category] = append(byCategory[sup.Category], sup.Rating)
	}

	ratings := make([]types.CategoryRating, 0, len(byCategory))
	for category, values := range byCategory {
		entry := types.CategoryRating{
			Category:  category,
			Suppliers: len(values),
			Best:      values[0],
			Worst:     values[0],
		}
		sum := 0.0
		for _, v := range values {
			sum += v
			if v > entry.Best {
				entry.Best = v
			}
			if v < entry.Worst {
				entry.Worst = v
			}
		}
		entry.Average = sum / float64(len(values))
		ratings = append(ratings, entry)
	}

	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].Category < ratings[j].Category
	})
	return ratings
}

// budgetAllocation computes each category's share of approved offer
// spending. Offers whose supplier left the catalog count as "Other".
func budgetAllocation(ctx context.Context, store repository.Store, offers []*model.Offer) []types.BudgetSlice {
	byCategory := make(map[string]float64)
	total := 0.0
	for _, offer := range offers {
		category := "Other"
		if sup, err := store.Supplier(ctx, offer.SupplierID); err == nil {
			category = sup.Category
		}
		byCategory[category] += offer.Amount
		total += offer.Amount
	}

	slices := make([]types.BudgetSlice, 0, len(byCategory))
	for category, amount := range byCategory {
		slice := types.BudgetSlice{Category: category, Amount: amount}
		if total > 0 {
			slice.Share = amount / total
		}
		slices = append(slices, slice)
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Amount != slices[j].Amount {
			return slices[i].Amount > slices[j].Amount
		}
		return slices[i].Category < slices[j].Category
	})
	return slices
}
