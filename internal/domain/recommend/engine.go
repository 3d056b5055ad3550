// Package recommend scores suppliers against an event and ranks them.
// The engine is a pure function of its inputs: it holds no mutable
// state, never blocks and is safe to call from any number of goroutines.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planora/planora/internal/domain/model"
)

// Scoring point values. Terms are additive and independent, so the
// total has no fixed ceiling.
const (
	budgetFitPoints     = 20
	budgetStretchPoints = 10
	budgetStretchFactor = 1.2
	locationPoints      = 15
	ratingMultiplier    = 5
	highRatingThreshold = 4.7
	categoryPoints      = 25
	keywordPoints       = 5
	capacityPoints      = 15
	capacityPerGuest    = 10
)

// DefaultLimit is the number of recommendations returned when the
// caller does not ask for a specific count.
const DefaultLimit = 3

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithBudgetFallback overrides the value substituted for unparseable
// budget strings.
func WithBudgetFallback(v float64) Option {
	return func(e *Engine) {
		if v > 0 {
			e.budgetFallback = v
		}
	}
}

// WithAssumedGuests overrides the headcount multiplier for "/person"
// prices.
func WithAssumedGuests(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.assumedGuests = float64(n)
		}
	}
}

// WithAssumedHours overrides the duration multiplier for "/hour" prices.
func WithAssumedHours(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.assumedHours = float64(n)
		}
	}
}

// Recommendation pairs a supplier with its match score and a generated
// human-readable justification. The supplier is referenced, not copied.
type Recommendation struct {
	Supplier *model.Supplier
	Score    float64
	Reason   string
}

// Engine computes supplier recommendations for events.
type Engine struct {
	budgetFallback float64
	assumedGuests  float64
	assumedHours   float64
}

// NewEngine creates an engine with the default pricing assumptions.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		budgetFallback: defaultBudgetFallback,
		assumedGuests:  defaultAssumedGuests,
		assumedHours:   defaultAssumedHours,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend scores every candidate independently, sorts descending by
// score (stable, so tied candidates keep their input order) and returns
// the first limit entries. A limit of zero or less yields no results.
func (e *Engine) Recommend(event *model.Event, suppliers []*model.Supplier, limit int) []Recommendation {
	if limit <= 0 {
		return nil
	}

	recs := make([]Recommendation, 0, len(suppliers))
	for _, s := range suppliers {
		score, reasons := e.Score(event, s)
		recs = append(recs, Recommendation{
			Supplier: s,
			Score:    score,
			Reason:   buildReason(s, reasons),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// Score evaluates one supplier against one event. It returns the
// additive match score and the match reasons in evaluation order.
// Malformed input degrades the score instead of failing: a price with
// no digits parses to NaN, which fails every comparison it feeds.
func (e *Engine) Score(event *model.Event, supplier *model.Supplier) (float64, []string) {
	budget := parseBudget(event.Budget, e.budgetFallback)
	price := parsePrice(supplier.Price, e.budgetFallback, e.assumedGuests, e.assumedHours)

	score := 0.0
	var reasons []string

	// Budget alignment.
	switch {
	case price <= budget:
		score += budgetFitPoints
		reasons = append(reasons, "Within budget")
	case price <= budget*budgetStretchFactor:
		score += budgetStretchPoints
		reasons = append(reasons, "Slightly above budget but offers good value")
	}

	// Location match, either direction. The supplier side is reduced to
	// its first comma-delimited segment ("Chicago, IL" -> "Chicago").
	if strings.Contains(supplier.Location, event.Location) ||
		strings.Contains(event.Location, strings.Split(supplier.Location, ",")[0]) {
		score += locationPoints
		reasons = append(reasons, "Location match")
	}

	// Rating contributes continuously; the annotation threshold adds a
	// reason only, no extra points.
	score += supplier.Rating * ratingMultiplier
	if supplier.Rating >= highRatingThreshold {
		reasons = append(reasons, "Highly rated service")
	}

	// Category relevance inferred from the event text.
	for _, category := range RelevantCategories(event.Name, event.Description) {
		if category == supplier.Category {
			eventType := event.Type
			if eventType == "" {
				eventType = "this type of event"
			}
			score += categoryPoints
			reasons = append(reasons, fmt.Sprintf("Perfect for %s", eventType))
			break
		}
	}

	// Keyword overlap between event text and supplier tags/description.
	matches := keywordMatches(event, supplier)
	score += float64(matches) * keywordPoints
	if matches > 0 {
		reasons = append(reasons, "Matches your event needs")
	}

	// Capacity heuristic for venues and caterers: a priced-out listing
	// above ten dollars a head suggests room for the guest count.
	if supplier.Category == "Venue" || supplier.Category == "Catering" {
		if strings.Contains(supplier.Price, "$") && price > float64(event.Attendees)*capacityPerGuest {
			score += capacityPoints
			reasons = append(reasons, "Can accommodate your guest count")
		}
	}

	return score, reasons
}

// keywordMatches counts extracted event keywords found as substrings in
// the supplier's tags or description words.
func keywordMatches(event *model.Event, supplier *model.Supplier) int {
	keywords := ExtractKeywords(event.Name, event.Description)

	candidates := make([]string, 0, len(supplier.Tags))
	candidates = append(candidates, supplier.Tags...)
	candidates = append(candidates, strings.Fields(strings.ToLower(supplier.Description))...)

	matches := 0
	for _, keyword := range keywords {
		for _, candidate := range candidates {
			if strings.Contains(strings.ToLower(candidate), keyword) {
				matches++
				break
			}
		}
	}
	return matches
}

// buildReason assembles the justification string: the first recorded
// reason, optionally joined with a lower-cased second one, then the
// rating/review suffix. Suppliers with no triggered terms still get a
// generic category recommendation.
func buildReason(supplier *model.Supplier, reasons []string) string {
	primary := fmt.Sprintf("Recommended %s service", supplier.Category)
	if len(reasons) > 0 {
		primary = reasons[0]
	}

	secondary := ""
	if len(reasons) > 1 {
		secondary = " and " + strings.ToLower(reasons[1])
	}

	return fmt.Sprintf("%s%s. %.1f/5 stars from %d reviews.",
		primary, secondary, supplier.Rating, supplier.Reviews)
}
