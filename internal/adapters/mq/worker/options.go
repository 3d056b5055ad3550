package worker

// Option applies a configuration option to the RefreshWorker.
type Option func(*RefreshWorker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *RefreshWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithRefreshLimit sets how many recommendations a refresh caches.
func WithRefreshLimit(limit int) Option {
	return func(w *RefreshWorker) {
		if limit > 0 {
			w.refreshLimit = limit
		}
	}
}
