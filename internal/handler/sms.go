package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	domain "github.com/oggyb/buka-sms/internal/domain/message"
	"github.com/oggyb/buka-sms/internal/request"
	"github.com/oggyb/buka-sms/internal/response"
	"github.com/oggyb/buka-sms/internal/service"
	"github.com/oggyb/buka-sms/internal/sms"
	"github.com/sirupsen/logrus"
)

// HeaderIdempotencyKey lets callers make a send safe to repeat.
const HeaderIdempotencyKey = "Idempotency-Key"

// maxBodyBytes bounds the request body; 100 numbers plus a long message fit easily.
const maxBodyBytes = 64 << 10

// SMSHandler wires HTTP endpoints to the SMS service.
type SMSHandler struct {
	svc service.SMSService
	log logrus.FieldLogger
}

// NewSMSHandler constructs a new SMSHandler with its dependencies.
func NewSMSHandler(svc service.SMSService, log logrus.FieldLogger) *SMSHandler {
	return &SMSHandler{svc: svc, log: log.WithField("component", "handler")}
}

// Send godoc
// @Summary     Send an SMS
// @Description Sends one message to up to 100 numbers in a single provider request.
// @Tags        sms
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Reject repeats of the same request"
// @Param       request body request.SendSMSRequest true "Recipients and content"
// @Success     200 {object} response.SendSMSResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     409 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Failure     504 {object} response.ErrorResponse
// @Router      /sms [post]
func (h *SMSHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendSMSRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, response.ReasonInvalidRequest, "invalid JSON body")
		return
	}

	d, err := h.svc.Send(r.Context(), r.Header.Get(HeaderIdempotencyKey), req.Numbers, req.Content)
	if err != nil {
		status, reason := statusFor(err)
		msg := err.Error()
		switch reason {
		case response.ReasonInternal:
			h.log.WithError(err).Error("Send failed.")
			msg = "internal error"
		case response.ReasonTimeout:
			msg = "provider did not answer in time"
		}
		response.RespondError(w, status, reason, msg)
		return
	}

	response.RespondJSON(w, http.StatusOK, response.FromDispatch(d))
}

// statusFor maps service and client errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoRecipients),
		errors.Is(err, domain.ErrTooManyRecipients),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, sms.ErrUsage),
		errors.Is(err, sms.ErrConfiguration):
		return http.StatusBadRequest, response.ReasonInvalidRequest
	case errors.Is(err, service.ErrDuplicateRequest):
		return http.StatusConflict, response.ReasonDuplicate
	// Provider timeouts arrive as a TransportError wrapping the deadline.
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, response.ReasonTimeout
	case errors.Is(err, sms.ErrTransport):
		return http.StatusBadGateway, response.ReasonProvider
	default:
		return http.StatusInternalServerError, response.ReasonInternal
	}
}
