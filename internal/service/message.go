package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oggyb/buka-sms/internal/cache"
	domain "github.com/oggyb/buka-sms/internal/domain/message"
	"github.com/oggyb/buka-sms/internal/metrics"
	"github.com/oggyb/buka-sms/internal/sms"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrDuplicateRequest is returned when an idempotency key was already used.
var ErrDuplicateRequest = errors.New("request with this idempotency key was already accepted")

type SMSService interface {
	Send(ctx context.Context, idempotencyKey string, numbers []string, content string) (*Dispatch, error)
	Health(ctx context.Context) error
}

// Dispatch describes a batch handed to the provider.
type Dispatch struct {
	BatchID          uuid.UUID
	Recipients       int
	StatusCode       int
	ProviderResponse []byte
}

// Options tunes outbound sending. Zero values fall back to defaults.
type Options struct {
	RateQPS        float64
	RateBurst      int
	SendTimeout    time.Duration
	IdempotencyTTL time.Duration
}

type smsService struct {
	sender  sms.Sender
	cache   cache.Cache
	limiter *rate.Limiter
	log     logrus.FieldLogger

	sendTimeout    time.Duration
	idempotencyTTL time.Duration
}

// NewSMSService creates the relay service. cache may be nil, in which case
// idempotency keys are ignored.
func NewSMSService(sender sms.Sender, c cache.Cache, opts Options, log logrus.FieldLogger) SMSService {
	if opts.RateQPS <= 0 {
		opts.RateQPS = 10
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 10
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = 24 * time.Hour
	}

	return &smsService{
		sender:         sender,
		cache:          c,
		limiter:        rate.NewLimiter(rate.Limit(opts.RateQPS), opts.RateBurst),
		log:            log.WithField("component", "service"),
		sendTimeout:    opts.SendTimeout,
		idempotencyTTL: opts.IdempotencyTTL,
	}
}

// Send validates the batch, reserves the idempotency key if one is given and
// makes exactly one provider call. A send that certainly did not reach the
// provider releases the key so the caller may try again. When the provider
// call timed out or was canceled the batch may already be accepted, so the
// key is kept until its TTL runs out. The service itself never retries.
func (s *smsService) Send(ctx context.Context, idempotencyKey string, numbers []string, content string) (*Dispatch, error) {
	batch, err := domain.NewBatch(numbers, content)
	if err != nil {
		metrics.SendTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	logger := s.log.WithFields(logrus.Fields{
		"batch_id":   batch.ID.String(),
		"recipients": len(batch.Numbers),
	})

	release := func() {}
	if idempotencyKey != "" && s.cache != nil {
		key := cache.Idempotency.Key(idempotencyKey)
		ok, err := s.cache.SetNX(ctx, key, batch.ID.String(), s.idempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if !ok {
			metrics.SendTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			logger.WithField("idempotency_key", idempotencyKey).Info("Duplicate request ignored.")
			return nil, ErrDuplicateRequest
		}
		release = func() {
			// The request context may already be gone.
			if err := s.cache.Del(context.WithoutCancel(ctx), key); err != nil {
				logger.WithError(err).Warn("Failed to release idempotency key.")
			}
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		release()
		if ctx.Err() == nil {
			// The limiter gives up early when the deadline cannot be met.
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return nil, fmt.Errorf("wait for send slot: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.sender.Send(sendCtx, batch.Numbers, batch.Content)
	metrics.SendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := metrics.OutcomeRejected
		if errors.Is(err, sms.ErrTransport) {
			outcome = metrics.OutcomeTransportError
		}
		metrics.SendTotal.WithLabelValues(outcome).Inc()
		logger.WithError(err).Error("Failed to send batch.")
		if outcomeUnknown(err) {
			logger.Warn("Provider outcome unknown, keeping idempotency key.")
		} else {
			release()
		}
		return nil, fmt.Errorf("send batch %s: %w", batch.ID, err)
	}

	metrics.SendTotal.WithLabelValues(metrics.OutcomeSent).Inc()
	metrics.BatchRecipients.Observe(float64(len(batch.Numbers)))
	logger.WithField("status", res.StatusCode).Info("Batch accepted by provider.")

	return &Dispatch{
		BatchID:          batch.ID,
		Recipients:       len(batch.Numbers),
		StatusCode:       res.StatusCode,
		ProviderResponse: res.Body,
	}, nil
}

// outcomeUnknown reports whether the request may have reached the provider
// even though no answer came back.
func outcomeUnknown(err error) bool {
	return errors.Is(err, sms.ErrTransport) &&
		(errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled))
}

// Health reports whether the idempotency cache is reachable.
func (s *smsService) Health(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
