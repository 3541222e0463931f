package handler

import (
	"context"
	"net/http"

	"github.com/oggyb/buka-sms/internal/response"
	"github.com/sirupsen/logrus"
)

// HealthChecker reports whether the service dependencies are reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HomeHandler serves basic root and health endpoints.
type HomeHandler struct {
	health HealthChecker
	log    logrus.FieldLogger
}

// NewHomeHandler returns a new HomeHandler. health may be nil.
func NewHomeHandler(health HealthChecker, log logrus.FieldLogger) *HomeHandler {
	return &HomeHandler{health: health, log: log.WithField("component", "handler")}
}

// Index godoc
// @Summary     Welcome endpoint
// @Description Simple root endpoint that returns a welcome message.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomeResponse
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	payload := response.WelcomePayload{
		Message: "Buka SMS relay",
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Health godoc
// @Summary     Health check
// @Description Reports whether the relay and its cache are reachable.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthResponse
// @Failure     503 {object} response.ErrorResponse
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Health(r.Context()); err != nil {
			h.log.WithError(err).Warn("Health check failed.")
			response.RespondError(w, http.StatusServiceUnavailable, response.ReasonUnavailable, "dependency unavailable")
			return
		}
	}

	payload := response.HealthPayload{
		Status: "ok",
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
