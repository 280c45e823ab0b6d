package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appsettings "github.com/cecypo/powerpack-backend/internal/application/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSettingsRepository implements settings.Repository for testing
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*settings.PowerPackSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.PowerPackSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *settings.PowerPackSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockSettingsCache implements settings.Cache for testing
type MockSettingsCache struct {
	mock.Mock
}

func (m *MockSettingsCache) Get(ctx context.Context) (*settings.PowerPackSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.PowerPackSettings), args.Error(1)
}

func (m *MockSettingsCache) Set(ctx context.Context, s *settings.PowerPackSettings, ttl time.Duration) error {
	args := m.Called(ctx, s, ttl)
	return args.Error(0)
}

func (m *MockSettingsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func setupSettingsRouter(repo *MockSettingsRepository, cache *MockSettingsCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	service := appsettings.NewFeatureService(repo, cache, zap.NewNop())
	h := NewSettingsHandler(service, zap.NewNop())

	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	t.Run("returns stored flags", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		record := settings.NewPowerPackSettings()
		record.EnableWarnings = true
		cache.On("Get", mock.Anything).Return(record, nil)

		engine := setupSettingsRouter(repo, cache)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/powerpack/settings", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Flags map[string]bool `json:"flags"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.True(t, resp.Data.Flags[settings.FlagWarnings])
		assert.False(t, resp.Data.Flags[settings.FlagPOSPowerup])
	})

	t.Run("defaults when no record exists", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		cache.On("Get", mock.Anything).Return(nil, nil)
		repo.On("Get", mock.Anything).Return(nil, shared.ErrNotFound)

		engine := setupSettingsRouter(repo, cache)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/powerpack/settings", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	t.Run("applies known flags", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		record := settings.NewPowerPackSettings()
		repo.On("Get", mock.Anything).Return(record, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		cache.On("Invalidate", mock.Anything).Return(nil)

		body, _ := json.Marshal(gin.H{"flags": gin.H{settings.FlagCompactTheme: true}})

		engine := setupSettingsRouter(repo, cache)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/powerpack/settings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, record.EnableCompactTheme)
		repo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
		cache.AssertCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("rejects unknown flag names", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)

		body, _ := json.Marshal(gin.H{"flags": gin.H{"enable_time_travel": true}})

		engine := setupSettingsRouter(repo, cache)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/powerpack/settings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing flags object", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)

		engine := setupSettingsRouter(repo, cache)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/powerpack/settings", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettingsHandler_GetFeature(t *testing.T) {
	t.Run("reports flag state", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		cache := new(MockSettingsCache)
		record := settings.NewPowerPackSettings()
		record.EnablePOSPowerup = true
		cache.On("Get", mock.Anything).Return(record, nil)

		engine := setupSettingsRouter(repo, cache)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/powerpack/features/"+settings.FlagPOSPowerup, nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Enabled bool `json:"enabled"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Enabled)
	})

	t.Run("rejects unknown flag", func(t *testing.T) {
		engine := setupSettingsRouter(new(MockSettingsRepository), new(MockSettingsCache))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/powerpack/features/enable_time_travel", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
