// Package handler contains the gin HTTP handlers for the dashboard API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopops/backend/internal/domain/courier"
	"github.com/shopops/backend/internal/interfaces/http/dto"
	"github.com/shopops/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := middleware.GetRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleCourierError maps the courier error taxonomy to HTTP responses. The
// upstream rejection message is passed through so the operator can fix the
// shipment form.
func (h *BaseHandler) HandleCourierError(c *gin.Context, err error) {
	code := dto.ErrCodeInternal
	switch {
	case errors.Is(err, courier.ErrNotConfigured):
		code = dto.ErrCodeCourierNotConfigured
	case errors.Is(err, courier.ErrAuthFailed):
		code = dto.ErrCodeCourierAuthFailed
	case errors.Is(err, courier.ErrRejected):
		code = dto.ErrCodeCourierRejected
	case errors.Is(err, courier.ErrUnavailable):
		code = dto.ErrCodeCourierUnavailable
	case errors.Is(err, courier.ErrUnknown):
		code = dto.ErrCodeCourierUnknown
	}
	h.Error(c, dto.GetHTTPStatus(code), code, err.Error())
}
