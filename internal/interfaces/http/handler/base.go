package handler

import (
	"errors"
	"net/http"

	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/cecypo/powerpack-backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new BaseHandler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// List writes a 200 response with collection metadata
func (h *BaseHandler) List(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total))
}

// Error writes an error response; the HTTP status derives from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	code = dto.NormalizeErrorCode(code)
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, h.requestID(c)))
}

// BadRequest writes a 400 response for malformed input
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// ValidationError writes a 400 response with per-field details
func (h *BaseHandler) ValidationError(c *gin.Context, message string, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(message, h.requestID(c), details))
}

// HandleError maps a service error to the right HTTP response. Domain
// errors keep their code and message; anything else becomes an opaque
// internal error so storage details never leak to clients.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message)
		return
	}
	h.logger.Error("Unhandled error in request",
		zap.String("request_id", h.requestID(c)),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, "Internal server error")
}

func (h *BaseHandler) requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
