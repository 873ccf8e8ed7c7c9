package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/repository"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/clock"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/kafka"
)

// Policy holds the borrowing rules the ledger enforces.
type Policy struct {
	MaxOpenLoans    int
	DueSoonDays     int
	DefaultLoanDays int
}

func DefaultPolicy() Policy {
	return Policy{
		MaxOpenLoans:    3,
		DueSoonDays:     3,
		DefaultLoanDays: 14,
	}
}

type Service struct {
	repo     repository.Repository
	clock    clock.Clock
	policy   Policy
	enqueuer kafka.Enqueuer
	log      *zap.Logger
}

type Option func(s *Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

func WithEnqueuer(e kafka.Enqueuer) Option {
	return func(s *Service) {
		s.enqueuer = e
	}
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		clock:    clock.System,
		policy:   DefaultPolicy(),
		enqueuer: kafka.NopEnqueuer{},
		log:      log.Named("ledger"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Policy() Policy {
	return s.policy
}

func (s *Service) today() time.Time {
	return clock.Today(s.clock)
}

// publish emits ev after its unit of work has committed. A broker failure is
// logged and otherwise ignored.
func (s *Service) publish(ctx context.Context, ev model.Event) {
	ev.ID = uuid.NewString()
	ev.OccurredAt = s.clock.Now().UTC()

	key := ev.Type
	switch {
	case ev.LoanID != 0:
		key = strconv.FormatInt(ev.LoanID, 10)
	case ev.ItemID != 0:
		key = strconv.FormatInt(ev.ItemID, 10)
	}
	if err := s.enqueuer.Enqueue(ctx, kafka.LendingTopic, key, ev); err != nil {
		s.log.Warn("publish event",
			zap.String("type", ev.Type),
			zap.String("id", ev.ID),
			zap.Error(err))
	}
}
