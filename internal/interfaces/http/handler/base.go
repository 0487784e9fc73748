package handler

import (
	"errors"
	"net/http"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides shared response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new BaseHandler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 response with data
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// ErrorWithCode sends an error response for the given error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	requestID := h.getRequestID(c)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// Error maps a domain error to an error response
func (h *BaseHandler) Error(c *gin.Context, err error) {
	code := errorCode(err)
	if code == dto.ErrCodeInternal {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", h.getRequestID(c)),
			zap.Error(err),
		)
		h.ErrorWithCode(c, code, "An internal error occurred")
		return
	}
	h.ErrorWithCode(c, code, err.Error())
}

// BadRequest sends a 400 validation error response
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	h.ErrorWithCode(c, dto.ErrCodeValidation, err.Error())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, connector.ErrInvalidProvider):
		return dto.ErrCodeInvalidProvider
	case errors.Is(err, connector.ErrRateLimited):
		return dto.ErrCodeRateLimited
	case errors.Is(err, connector.ErrUnauthorized):
		return dto.ErrCodeUnauthorized
	case errors.Is(err, connector.ErrProviderError):
		return dto.ErrCodeProviderFailure
	case errors.Is(err, connector.ErrJobForbidden):
		return dto.ErrCodeForbidden
	case errors.Is(err, connector.ErrJobNotFound), errors.Is(err, connector.ErrTokenNotFound):
		return dto.ErrCodeNotFound
	case errors.Is(err, connector.ErrJobInvalidTransition), errors.Is(err, connector.ErrJobMissingError):
		return dto.ErrCodeInvalidState
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr {
		case shared.ErrNotFound:
			return dto.ErrCodeNotFound
		case shared.ErrAlreadyExists:
			return dto.ErrCodeConflict
		case shared.ErrInvalidInput:
			return dto.ErrCodeInvalidInput
		case shared.ErrUnauthorized:
			return dto.ErrCodeUnauthorized
		case shared.ErrForbidden:
			return dto.ErrCodeForbidden
		case shared.ErrInvalidState:
			return dto.ErrCodeInvalidState
		case shared.ErrRateLimited:
			return dto.ErrCodeRateLimited
		}
	}
	return dto.ErrCodeInternal
}

func (h *BaseHandler) getUserID(c *gin.Context) uuid.UUID {
	return middleware.GetUserID(c)
}

func (h *BaseHandler) getRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
