package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WelcomeMessage is served on the root path.
const WelcomeMessage = "Welcome to atofon server!"

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthHandler serves liveness endpoints.
type HealthHandler struct {
	Check  HealthCheck
	Driver string

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewHealthHandler creates a HealthHandler. A nil check always succeeds.
func NewHealthHandler(check HealthCheck, driver string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		Check:          check,
		Driver:         driver,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// HealthHandler provides a health check endpoint
func (h *HealthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, 5*time.Second)
	defer cancel()

	if h.Check != nil {
		if err := h.Check(ctx); err != nil {
			h.ErrorHandler.Logger.Warn("Health check failed", zap.String("driver", h.Driver), zap.Error(err))
			h.ErrorHandler.SendEnvelope(w, http.StatusServiceUnavailable, Envelope{
				Success: false,
				Message: "Service is unhealthy",
				Data:    h.ResponseHelper.CreateHealthCheckData("unhealthy", h.Driver),
				Error:   err.Error(),
			})
			return
		}
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Service is healthy",
		h.ResponseHelper.CreateHealthCheckData("healthy", h.Driver))
}

// WelcomeHandler answers the root path with a plain greeting.
func (h *HealthHandler) WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(WelcomeMessage))
}
