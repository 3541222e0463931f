package sms

import (
	"encoding/json"
	"fmt"
)

// Result is the provider's answer to a send, untouched.
type Result struct {
	StatusCode int
	Body       []byte
}

// SendResponse is the documented Buka response envelope.
type SendResponse struct {
	Status  string          `json:"status"`
	Reason  string          `json:"reason"`
	Success string          `json:"success"`
	Fail    string          `json:"fail"`
	Array   []MessageResult `json:"array"`
}

// MessageResult identifies the message created for one recipient.
type MessageResult struct {
	MsgID   string `json:"msgId"`
	Number  string `json:"number"`
	OrderID string `json:"orderId"`
}

// OK reports whether the provider accepted the request.
func (r *SendResponse) OK() bool {
	return r.Status == "0"
}

// Decode parses the body as a SendResponse.
func (r *Result) Decode() (*SendResponse, error) {
	var resp SendResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return &resp, nil
}
