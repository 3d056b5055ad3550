// Package types contains common read shapes shared across the application.
package types

// Recommendation is the wire shape of one recommendation entry: the
// supplier fields a caller needs for rendering, the match score and the
// generated reason.
type Recommendation struct {
	SupplierID string  `json:"supplier_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Location   string  `json:"location"`
	Price      string  `json:"price"`
	Rating     float64 `json:"rating"`
	Reviews    int     `json:"reviews"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
}

// CategoryRating aggregates supplier ratings for one category.
type CategoryRating struct {
	Category  string  `json:"category"`
	Suppliers int     `json:"suppliers"`
	Average   float64 `json:"average"`
	Best      float64 `json:"best"`
	Worst     float64 `json:"worst"`
}

// BudgetSlice is one category's share of approved offer spending.
type BudgetSlice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Share    float64 `json:"share"` // 0.0 to 1.0
}

// AnalyticsReport is the aggregate view served by GET /analytics.
type AnalyticsReport struct {
	TotalSuppliers       int              `json:"total_suppliers"`
	TotalEvents          int              `json:"total_events"`
	TotalOffers          int              `json:"total_offers"`
	PendingVerifications int              `json:"pending_verifications"`
	AverageRating        float64          `json:"average_rating"`
	CategoryRatings      []CategoryRating `json:"category_ratings"`
	BudgetAllocation     []BudgetSlice    `json:"budget_allocation"`
}
