package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithIDGenerator replaces the random ID source, letting tests create
// records with deterministic identifiers.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
