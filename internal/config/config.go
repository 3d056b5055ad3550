// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All loading functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// QueueSize bounds the in-memory refresh queue.
	QueueSize int `koanf:"queue_size" validate:"gt=0"`

	// WorkerCount sets the number of refresh workers.
	WorkerCount int `koanf:"worker_count" validate:"gt=0"`

	// DedupeSize bounds the pending-refresh set.
	DedupeSize int `koanf:"dedupe_size" validate:"gt=0"`

	// RefreshLimit is how many recommendations a background refresh caches
	// per event.
	RefreshLimit int `koanf:"refresh_limit" validate:"gt=0"`

	// MaxRecommendationLimit caps the limit parameter on recommendation reads.
	MaxRecommendationLimit int `koanf:"max_recommendation_limit" validate:"gt=0"`

	// BudgetFallback is the budget assumed when an event's budget cannot
	// be parsed.
	BudgetFallback float64 `koanf:"budget_fallback" validate:"gt=0"`

	// AssumedGuests converts per-person prices to totals.
	AssumedGuests int `koanf:"assumed_guests" validate:"gt=0"`

	// AssumedHours converts hourly prices to totals.
	AssumedHours int `koanf:"assumed_hours" validate:"gt=0"`

	// SeedCatalog loads the built-in demo catalog at startup.
	SeedCatalog bool `koanf:"seed_catalog"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		QueueSize:              10_000,
		WorkerCount:            runtime.NumCPU() * 2,
		DedupeSize:             50_000,
		RefreshLimit:           10,
		MaxRecommendationLimit: 25,
		BudgetFallback:         5000,
		AssumedGuests:          100,
		AssumedHours:           8,
		SeedCatalog:            true,
	}
}
