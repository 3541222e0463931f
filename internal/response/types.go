package response

import (
	"encoding/json"

	"github.com/oggyb/buka-sms/internal/service"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

// SendSMSPayload reports a batch handed to the provider. ProviderResponse is
// the provider body as returned, embedded as JSON when it is valid JSON.
type SendSMSPayload struct {
	BatchID          string          `json:"batchId"`
	Recipients       int             `json:"recipients"`
	ProviderStatus   int             `json:"providerStatus"`
	ProviderResponse json.RawMessage `json:"providerResponse" swaggertype:"object"`
}

type SendSMSResponse struct {
	Success   bool           `json:"success"`
	Data      SendSMSPayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// FromDispatch converts a service dispatch into its API representation.
func FromDispatch(d *service.Dispatch) SendSMSPayload {
	return SendSMSPayload{
		BatchID:          d.BatchID.String(),
		Recipients:       d.Recipients,
		ProviderStatus:   d.StatusCode,
		ProviderResponse: rawJSON(d.ProviderResponse),
	}
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	quoted, _ := json.Marshal(string(b))
	return json.RawMessage(quoted)
}
