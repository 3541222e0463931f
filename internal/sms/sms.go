// Package sms is a client for the Buka SMS delivery API.
//
// A Client holds provider credentials; To selects up to MaxRecipients numbers
// and returns an immutable Request whose Send signs and posts the message.
package sms

import (
	"context"
	"net/http"
)

// Sender is the contract consumed by the relay service.
type Sender interface {
	// Send delivers content to every number in a single provider request.
	// It returns the raw provider result, or an error if the request could not
	// be built or the transport failed.
	Send(ctx context.Context, numbers []string, content string) (*Result, error)
}

// HTTPDoer issues outbound requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
