package settings

import (
	"context"
	"time"
)

// Repository provides access to the persisted settings record
type Repository interface {
	// Get returns the singleton settings row, or shared.ErrNotFound
	// when it has never been created
	Get(ctx context.Context) (*PowerPackSettings, error)

	// Save creates or updates the singleton settings row
	Save(ctx context.Context, s *PowerPackSettings) error
}

// Cache holds the settings record between reads. Implementations must
// treat a nil return with nil error as a cache miss.
type Cache interface {
	Get(ctx context.Context) (*PowerPackSettings, error)
	Set(ctx context.Context, s *PowerPackSettings, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// FeatureGate answers whether a named power-up feature is enabled.
// It is injected into every gated service instead of being read from a
// process global, so services stay pure and testable.
type FeatureGate interface {
	// IsEnabled never returns an error: missing record, unknown flag
	// and storage failures all report false
	IsEnabled(ctx context.Context, flag string) bool
}
