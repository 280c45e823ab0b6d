package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/settings"
)

// InMemorySettingsCache implements settings.Cache with a single guarded
// entry. Suitable as L1 in front of Redis or standalone in
// single-instance deployments.
type InMemorySettingsCache struct {
	mu        sync.RWMutex
	record    *settings.PowerPackSettings
	expiresAt time.Time
}

// NewInMemorySettingsCache creates a new in-memory settings cache
func NewInMemorySettingsCache() *InMemorySettingsCache {
	return &InMemorySettingsCache{}
}

// Get implements settings.Cache. A nil record with nil error is a miss.
func (c *InMemorySettingsCache) Get(_ context.Context) (*settings.PowerPackSettings, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.record == nil || time.Now().After(c.expiresAt) {
		return nil, nil
	}
	copied := *c.record
	return &copied, nil
}

// Set implements settings.Cache
func (c *InMemorySettingsCache) Set(_ context.Context, s *settings.PowerPackSettings, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *s
	c.record = &copied
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// Invalidate implements settings.Cache
func (c *InMemorySettingsCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record = nil
	return nil
}

var _ settings.Cache = (*InMemorySettingsCache)(nil)
