package handler

import (
	appsettings "github.com/cecypo/powerpack-backend/internal/application/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler serves the PowerPack settings endpoints
type SettingsHandler struct {
	BaseHandler
	service *appsettings.FeatureService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service *appsettings.FeatureService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetSettings returns the current flag values
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	resp, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateSettings applies flag changes. Flags absent from the request
// keep their stored values.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req appsettings.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var unknown []dto.ValidationDetail
	for name := range req.Flags {
		if !settings.IsKnownFlag(name) {
			unknown = append(unknown, dto.ValidationDetail{
				Field:   name,
				Message: "unknown feature flag",
			})
		}
	}
	if len(unknown) > 0 {
		h.ValidationError(c, "Unknown feature flags in request", unknown)
		return
	}

	resp, err := h.service.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DebugSettings returns flags plus cache state for diagnostics
func (h *SettingsHandler) DebugSettings(c *gin.Context) {
	resp, err := h.service.DebugSettings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetFeature reports whether a single flag is enabled
func (h *SettingsHandler) GetFeature(c *gin.Context) {
	flag := c.Param("flag")
	if !settings.IsKnownFlag(flag) {
		h.BadRequest(c, "Unknown feature flag: "+flag)
		return
	}

	h.Success(c, gin.H{
		"flag":    flag,
		"enabled": h.service.IsEnabled(c.Request.Context(), flag),
	})
}

// RegisterRoutes registers the settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	powerpack := rg.Group("/powerpack")
	{
		powerpack.GET("/settings", h.GetSettings)
		powerpack.PUT("/settings", h.UpdateSettings)
		powerpack.GET("/settings/debug", h.DebugSettings)
		powerpack.GET("/features/:flag", h.GetFeature)
	}
}
