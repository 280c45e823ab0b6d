package cache

import (
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SettingsCacheFactory creates settings caches based on configuration
type SettingsCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SettingsCacheFactoryOption is a functional option for configuring the factory
type SettingsCacheFactoryOption func(*SettingsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SettingsCacheFactoryOption {
	return func(f *SettingsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SettingsCacheFactoryOption {
	return func(f *SettingsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSettingsCacheFactory creates a new factory
func NewSettingsCacheFactory(cfg config.RedisConfig, opts ...SettingsCacheFactoryOption) *SettingsCacheFactory {
	f := &SettingsCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache returns a Redis-backed settings cache when Redis is
// enabled and reachable. In-memory caches do not share invalidations
// across instances, so the fallback only suits single-node deployments.
func (f *SettingsCacheFactory) CreateCache() (settings.Cache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory settings cache")
		return NewInMemorySettingsCache(), nil
	}

	redisCache, err := NewRedisSettingsCache(f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, err
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory settings cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err))
		return NewInMemorySettingsCache(), nil
	}

	f.logger.Info("Using Redis settings cache", zap.String("addr", f.redisConfig.Addr()))
	return redisCache, nil
}
