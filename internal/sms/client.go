package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

var _ Sender = (*Client)(nil)

const contentType = "application/json;charset=UTF-8"

// Client sends messages through the Buka API. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	config     Config
	httpClient HTTPDoer
	now        func() time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithClock replaces time.Now as the source of request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient validates cfg and returns a ready Client. Missing credentials are
// reported here rather than as an authentication failure from the provider.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the resolved configuration.
func (c *Client) Config() Config {
	return c.config
}

// Request returns an empty request bound to c.
func (c *Client) Request() Request {
	return Request{client: c}
}

// To selects the recipients of a new request.
func (c *Client) To(numbers ...string) (Request, error) {
	return c.Request().To(numbers...)
}

// Send implements Sender.
func (c *Client) Send(ctx context.Context, numbers []string, content string) (*Result, error) {
	req, err := c.To(numbers...)
	if err != nil {
		return nil, err
	}
	return req.Send(ctx, content)
}

// Request is a staged send. It is a value: To returns a new Request and
// leaves the receiver untouched, so one Request can be sent any number of times.
type Request struct {
	client  *Client
	numbers []string
}

// Numbers returns a copy of the selected recipients.
func (r Request) Numbers() []string {
	return slices.Clone(r.numbers)
}

// To returns a request whose recipients are replaced by numbers.
// On error the returned value is r itself.
func (r Request) To(numbers ...string) (Request, error) {
	if len(numbers) > MaxRecipients {
		return r, fmt.Errorf("%w: got %d, maximum is %d", ErrTooManyRecipients, len(numbers), MaxRecipients)
	}
	return Request{client: r.client, numbers: slices.Clone(numbers)}, nil
}

// payload is the provider's JSON body. Field order is part of the wire format.
type payload struct {
	SenderID string `json:"senderId"`
	AppID    string `json:"appId"`
	Numbers  string `json:"numbers"`
	Content  string `json:"content"`
}

// Send signs and posts content to the selected recipients in one call.
// The provider response is returned as is; it is not retried on failure.
func (r Request) Send(ctx context.Context, content string) (*Result, error) {
	if len(r.numbers) == 0 {
		return nil, ErrNoRecipients
	}
	if r.client == nil {
		return nil, ErrUnboundRequest
	}
	c := r.client

	timestamp := Timestamp(c.now())
	body, err := json.Marshal(payload{
		SenderID: c.config.SenderID,
		AppID:    c.config.AppID,
		Numbers:  strings.Join(r.numbers, ","),
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload: %v", ErrUsage, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrConfiguration, err)
	}
	req.Header.Set("Api-Key", c.config.APIKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Timestamp", strconv.FormatInt(timestamp, 10))
	req.Header.Set("Sign", Sign(c.config.APIKey, c.config.AppSecret, timestamp))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return &Result{StatusCode: resp.StatusCode, Body: raw}, nil
}
