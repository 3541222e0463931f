package sms

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of them
// with errors.Is.
var (
	ErrConfiguration = errors.New("sms: configuration error")
	ErrUsage         = errors.New("sms: usage error")
	ErrTransport     = errors.New("sms: transport error")
)

var (
	// ErrTooManyRecipients is returned when more than MaxRecipients numbers are selected.
	ErrTooManyRecipients = fmt.Errorf("%w: maximum numbers exceeded", ErrConfiguration)
	// ErrMissingCredentials is returned by NewClient when AppID, AppSecret or APIKey is empty.
	ErrMissingCredentials = fmt.Errorf("%w: missing credentials", ErrConfiguration)
	// ErrNoRecipients is returned by Send before any network call when no numbers were selected.
	ErrNoRecipients = fmt.Errorf("%w: no recipients set", ErrUsage)
	// ErrUnboundRequest is returned when Send is called on a Request not created by a Client.
	ErrUnboundRequest = fmt.Errorf("%w: request is not bound to a client", ErrUsage)
)

// TransportError reports a failed provider call: either the HTTP round trip
// itself failed (Err is set) or the provider answered with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sms: provider request failed: %v", e.Err)
	}
	return fmt.Sprintf("sms: provider returned non-2xx status: %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every TransportError match ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }
