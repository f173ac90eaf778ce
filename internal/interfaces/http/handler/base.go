// Package handler implements the HTTP handlers of the LawAI API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/lawai/backend/internal/infrastructure/logger"
	"github.com/lawai/backend/internal/interfaces/http/dto"
	"github.com/lawai/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const internalErrorMessage = "Erro interno do servidor"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID returns the id assigned by the RequestID middleware
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// callerID returns the authenticated user id. The JWT middleware guarantees
// it is set on protected routes.
func callerID(c *gin.Context) string {
	return middleware.GetJWTUserID(c)
}

// Success sends a 200 response whose body is data itself
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error envelope with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// BindError reports a failed ShouldBind call. Validator failures carry
// per-field details; anything else is a malformed body.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	if details := middleware.ValidationDetails(err); len(details) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Dados inválidos",
			getRequestID(c),
			details,
		))
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Corpo da requisição inválido")
}

// HandleError converts an error returned by a service into a response.
// Domain errors keep their message; anything else is logged and hidden
// behind a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, internalErrorMessage)
}

// parseInt64Param reads a positive integer path parameter. On failure it
// writes a 400 response and returns false.
func (h *BaseHandler) parseInt64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Identificador inválido: "+name)
		return 0, false
	}
	return id, true
}
