package settings

import (
	"context"
	"errors"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultCacheTTL bounds how long a stale settings snapshot can gate
// features after an update made on another node
const DefaultCacheTTL = 5 * time.Minute

// FeatureService resolves feature flags from the singleton settings
// record, cache first. It implements settings.FeatureGate.
type FeatureService struct {
	repo     settings.Repository
	cache    settings.Cache
	logger   *zap.Logger
	cacheTTL time.Duration
}

// FeatureServiceOption configures a FeatureService
type FeatureServiceOption func(*FeatureService)

// WithCacheTTL overrides the settings cache TTL
func WithCacheTTL(ttl time.Duration) FeatureServiceOption {
	return func(s *FeatureService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// NewFeatureService creates a new FeatureService
func NewFeatureService(repo settings.Repository, cache settings.Cache, logger *zap.Logger, opts ...FeatureServiceOption) *FeatureService {
	s := &FeatureService{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load returns the settings record, consulting the cache before the
// repository and backfilling the cache on a miss
func (s *FeatureService) load(ctx context.Context) (*settings.PowerPackSettings, error) {
	if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Settings cache read failed, falling back to storage", zap.Error(err))
	}

	record, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, record, s.cacheTTL); err != nil {
		s.logger.Warn("Settings cache write failed", zap.Error(err))
	}
	return record, nil
}

// IsEnabled reports whether a feature flag is on. Any failure along the
// way, including an absent settings record, reports false: a broken
// settings store must degrade to stock behavior, never enable power-ups.
func (s *FeatureService) IsEnabled(ctx context.Context, flag string) bool {
	record, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Feature flag lookup failed",
				zap.String("flag", flag),
				zap.Error(err))
		}
		return false
	}
	return record.Flag(flag)
}

// GetSettings returns the settings record, creating an all-off default
// in memory when none has been persisted yet
func (s *FeatureService) GetSettings(ctx context.Context) (*SettingsResponse, error) {
	record, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return toSettingsResponse(settings.NewPowerPackSettings()), nil
		}
		return nil, err
	}
	return toSettingsResponse(record), nil
}

// UpdateSettings applies the requested flag values, persists the record
// and invalidates the cache so every node observes the change
func (s *FeatureService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	record, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		record = settings.NewPowerPackSettings()
	}

	applyUpdate(record, req)
	record.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Settings cache invalidation failed", zap.Error(err))
	}

	s.logger.Info("PowerPack settings updated")
	return toSettingsResponse(record), nil
}

// DebugSettings returns the live flag map alongside cache state, for the
// diagnostics endpoint
func (s *FeatureService) DebugSettings(ctx context.Context) (*DebugSettingsResponse, error) {
	cached, cacheErr := s.cache.Get(ctx)

	record, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		record = settings.NewPowerPackSettings()
	}

	resp := &DebugSettingsResponse{
		Flags:     record.Flags(),
		CacheHit:  cached != nil,
		UpdatedAt: record.UpdatedAt,
	}
	if cacheErr != nil {
		resp.CacheError = cacheErr.Error()
	}
	return resp, nil
}

var _ settings.FeatureGate = (*FeatureService)(nil)
