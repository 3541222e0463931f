package sms

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the Buka send endpoint used when Config.BaseURL is empty.
const DefaultBaseURL = "https://api.onbuka.com/v3/sendSms"

// MaxRecipients is the provider limit of numbers per request.
const MaxRecipients = 100

// Config carries the provider credentials. It is resolved by the caller;
// the client never reads the environment.
type Config struct {
	AppID     string
	AppSecret string // only used to derive signatures, never transmitted
	APIKey    string
	SenderID  string
	BaseURL   string
}

// Validate fills defaults and reports every missing credential at once.
func (c *Config) Validate() error {
	var missing []string
	if c.AppID == "" {
		missing = append(missing, "appId")
	}
	if c.AppSecret == "" {
		missing = append(missing, "appSecret")
	}
	if c.APIKey == "" {
		missing = append(missing, "apiKey")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	return nil
}
