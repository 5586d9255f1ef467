package auth

import (
	"context"
	"fmt"

	"github.com/veldtec/go-r307/sensor"
	"github.com/veldtec/go-r307/template"
)

// DialFunc opens a fresh connection to the fingerprint sensor. The façade
// dials at the start of every operation and closes the device on every
// exit path, so the serial handle never leaks across calls.
type DialFunc func(ctx context.Context) (*sensor.Device, error)

// SerialDialer returns a DialFunc that opens the named serial port with
// the given sensor options.
//
// Example:
//
//	svc := auth.New(auth.SerialDialer("/dev/ttyUSB0"))
func SerialDialer(port string, opts ...sensor.Option) DialFunc {
	return func(ctx context.Context) (*sensor.Device, error) {
		return sensor.Open(port, opts...)
	}
}

// TemplateStore persists enrolled templates keyed by user identifier.
// Implementations live outside the core; cmd/fpctl ships a filesystem
// one, and anything that can hold an opaque blob per user works.
type TemplateStore interface {
	// Save persists the template for the user, replacing any previous one
	Save(ctx context.Context, userID string, tpl template.Template) error

	// Load returns the user's stored template
	Load(ctx context.Context, userID string) (template.Template, error)
}

// Service is the enrollment/authentication façade: the only entry points
// external collaborators call. One authentication attempt at a time per
// physical sensor; the Service does not serialize callers itself.
type Service struct {
	dial   DialFunc
	store  TemplateStore
	logger sensor.Logger
}

// Option is a functional option for configuring the Service.
type Option func(*Service)

// WithStore sets a template store; Enroll then persists the captured
// template before returning it.
func WithStore(store TemplateStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger sets a logger for façade operations.
func WithLogger(logger sensor.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service that reaches the sensor through dial.
func New(dial DialFunc, opts ...Option) *Service {
	if dial == nil {
		panic("dial cannot be nil")
	}

	s := &Service{dial: dial}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enroll captures a fresh fingerprint template for the user and returns
// it, normalized to template.Size bytes, for the caller to persist. When
// a store is configured the template is also saved before returning.
func (s *Service) Enroll(ctx context.Context, userID string) (template.Template, error) {
	if userID == "" {
		return nil, fmt.Errorf("enroll: user id cannot be empty")
	}

	dev, err := s.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("enroll %s: %w", userID, err)
	}
	defer func() { _ = dev.Close() }()

	tpl, err := dev.CaptureTemplate(ctx)
	if err != nil {
		return nil, fmt.Errorf("enroll %s: %w", userID, err)
	}

	if s.store != nil {
		if err := s.store.Save(ctx, userID, tpl); err != nil {
			return nil, fmt.Errorf("enroll %s: persist template: %w", userID, err)
		}
	}

	s.logInfo("user enrolled", "user", userID, "digest", tpl.Digest())
	return tpl, nil
}

// Authenticate verifies a live finger against the caller-supplied stored
// template. The outcome carries the sensor's own judgement plus its
// confidence score; mapping the score to an accept/reject policy is the
// caller's decision.
func (s *Service) Authenticate(ctx context.Context, userID string, stored []byte) (sensor.MatchOutcome, error) {
	if userID == "" {
		return sensor.MatchOutcome{}, fmt.Errorf("authenticate: user id cannot be empty")
	}
	if len(stored) == 0 {
		return sensor.MatchOutcome{}, fmt.Errorf("authenticate %s: stored template is empty", userID)
	}

	dev, err := s.dial(ctx)
	if err != nil {
		return sensor.MatchOutcome{}, fmt.Errorf("authenticate %s: %w", userID, err)
	}
	defer func() { _ = dev.Close() }()

	outcome, err := dev.MatchTemplate(ctx, stored)
	if err != nil {
		return sensor.MatchOutcome{}, fmt.Errorf("authenticate %s: %w", userID, err)
	}

	s.logInfo("authentication finished",
		"user", userID,
		"matched", outcome.Matched,
		"confidence", outcome.Confidence,
	)
	return outcome, nil
}

func (s *Service) logInfo(msg string, keysAndValues ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, keysAndValues...)
	}
}
