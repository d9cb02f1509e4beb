package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/niksmo/qkart/pkg/debounce"
	"golang.org/x/sync/singleflight"
)

var _ port.Storefront = (*Service)(nil)

const (
	defaultSearchTimeout = 10 * time.Second
	defaultViewTTL       = 30 * time.Minute
)

type Opt func(*Service)

// SearchDelayOpt sets the debounce delay of keystroke driven searches.
func SearchDelayOpt(d time.Duration) Opt {
	return func(s *Service) {
		s.searchDelay = d
	}
}

// SearchTimeoutOpt bounds a debounced search call.
func SearchTimeoutOpt(d time.Duration) Opt {
	return func(s *Service) {
		if d > 0 {
			s.searchTimeout = d
		}
	}
}

// ViewTTLOpt sets how long an idle session view is kept in memory.
func ViewTTLOpt(d time.Duration) Opt {
	return func(s *Service) {
		if d > 0 {
			s.viewTTL = d
		}
	}
}

func ClockOpt(c clock.Clock) Opt {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// EventsOpt sets the sink of client events. Events are dropped without one.
func EventsOpt(p port.ClientEventsProducer) Opt {
	return func(s *Service) {
		s.events = p
	}
}

type Service struct {
	ctx           context.Context
	backend       port.BackendAPI
	kv            port.KeyValueStorage
	events        port.ClientEventsProducer
	clock         clock.Clock
	searchDelay   time.Duration
	searchTimeout time.Duration
	viewTTL       time.Duration
	views         *views
	catalogFetch  singleflight.Group
}

// New returns the storefront service.
//
// ctx bounds the debounced searches, which outlive the request that
// scheduled them.
func New(
	ctx context.Context,
	backend port.BackendAPI,
	kv port.KeyValueStorage,
	opts ...Opt,
) *Service {
	s := &Service{
		ctx:           ctx,
		backend:       backend,
		kv:            kv,
		clock:         clock.New(),
		searchDelay:   debounce.DefaultDelay,
		searchTimeout: defaultSearchTimeout,
		viewTTL:       defaultViewTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.views = newViews(s.clock, s.searchDelay, s.viewTTL)
	return s
}

// Run evicts idle session views until ctx is done.
func (s *Service) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.views.stop()
	}()
	s.views.run()
}

// Close cancels all pending debounced searches.
func (s *Service) Close() {
	s.views.stopAll()
}

func (s *Service) LoadSession(
	ctx context.Context, sessionID string,
) (domain.Session, error) {
	const op = "Service.LoadSession"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.kv.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	sess := domain.Session{
		ID:       sessionID,
		Token:    entries[domain.SessionTokenKey],
		Username: entries[domain.SessionUsernameKey],
	}

	if raw, ok := entries[domain.SessionBalanceKey]; ok {
		balance, err := strconv.Atoi(raw)
		if err != nil {
			slog.Warn("invalid stored balance", "op", op, "err", err)
		}
		sess.Balance = balance
	}
	return sess, nil
}

func (s *Service) loggedInSession(
	ctx context.Context, sessionID string,
) (domain.Session, error) {
	sess, err := s.LoadSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	if !sess.LoggedIn() {
		return domain.Session{}, domain.ErrNotLoggedIn
	}
	return sess, nil
}

func (s *Service) emit(ctx context.Context, evt domain.ClientEvent) {
	const op = "Service.emit"

	if s.events == nil {
		return
	}
	evt.OccurredAt = s.clock.Now()
	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event",
			"op", op, "type", evt.Type, "err", err)
	}
}
