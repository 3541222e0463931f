// Package message holds the domain model and invariants for outbound batches.
package message

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oggyb/buka-sms/internal/sms"
)

// MaxRecipients is the largest batch the provider accepts in one request.
const MaxRecipients = sms.MaxRecipients

var (
	// ErrNoRecipients is returned when no usable phone number is provided.
	ErrNoRecipients = errors.New("at least one recipient phone number is required")
	// ErrTooManyRecipients is returned when the batch exceeds MaxRecipients.
	ErrTooManyRecipients = errors.New("too many recipients for a single batch")
	// ErrEmptyContent is returned when the message body is empty.
	ErrEmptyContent = errors.New("message content is required")
)

// Batch is one message addressed to up to MaxRecipients numbers.
type Batch struct {
	ID        uuid.UUID
	Numbers   []string
	Content   string
	CreatedAt time.Time
}

// NewBatch trims the numbers, drops blank ones and enforces the batch rules.
// Content is kept verbatim apart from the emptiness check.
func NewBatch(numbers []string, content string) (*Batch, error) {
	cleaned := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n != "" {
			cleaned = append(cleaned, n)
		}
	}

	if len(cleaned) == 0 {
		return nil, ErrNoRecipients
	}
	if len(cleaned) > MaxRecipients {
		return nil, ErrTooManyRecipients
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	return &Batch{
		ID:        uuid.New(),
		Numbers:   cleaned,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}
