package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"tourdesk/internal/catalog"
	"tourdesk/internal/checkout"
	apperrors "tourdesk/internal/errors"
	"tourdesk/internal/logger"
)

// SessionGauge observes the number of open sessions
type SessionGauge interface {
	SetActiveSessions(n int)
}

// CheckoutService keeps the open checkout sessions in memory
type CheckoutService struct {
	catalog  *CatalogService
	cfg      checkout.Config
	clock    clockwork.Clock
	notifier checkout.Notifier
	gauge    SessionGauge

	mu       sync.RWMutex
	sessions map[string]*checkout.Machine
}

func NewCheckoutService(catalogService *CatalogService, cfg checkout.Config, clock clockwork.Clock, notifier checkout.Notifier, gauge SessionGauge) *CheckoutService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	var notifiers checkout.Notifiers
	if notifier != nil {
		notifiers = append(notifiers, notifier)
	}
	return &CheckoutService{
		catalog:  catalogService,
		cfg:      cfg,
		clock:    clock,
		notifier: notifiers,
		gauge:    gauge,
		sessions: make(map[string]*checkout.Machine),
	}
}

// Start opens a session for a purchasable show
func (s *CheckoutService) Start(ctx context.Context, showID string) (*checkout.Machine, error) {
	show, err := s.catalog.Show(ctx, showID)
	if err != nil {
		return nil, err
	}
	if !catalog.Purchasable(show) {
		return nil, apperrors.ErrNotPurchasable
	}

	id := uuid.NewString()
	m, err := checkout.Open(id, show, s.cfg, s.clock, s.notifier)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[id] = m
	n := len(s.sessions)
	s.mu.Unlock()

	s.observe(n)
	s.notifier.StepChanged(ctx, id, "", checkout.StepSelecting)
	logger.WithSessionID(id).Info("Checkout started", "show_id", show.ID)
	return m, nil
}

func (s *CheckoutService) Get(id string) (*checkout.Machine, error) {
	s.mu.RLock()
	m, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return m, nil
}

// Discard cancels and forgets a session
func (s *CheckoutService) Discard(id string) error {
	s.mu.Lock()
	m, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return apperrors.ErrSessionNotFound
	}
	step := m.Cancel()
	s.observe(n)
	logger.WithSessionID(id).Info("Checkout discarded", "step", step)
	return nil
}

// ExpireIdle drops sessions idle for longer than ttl. Sessions waiting for
// confirmation are kept. Returns the number removed.
func (s *CheckoutService) ExpireIdle(ttl time.Duration) int {
	cutoff := s.clock.Now().Add(-ttl)

	s.mu.Lock()
	var expired []*checkout.Machine
	for id, m := range s.sessions {
		if m.Step() == checkout.StepSubmitted {
			continue
		}
		if m.LastActivity().Before(cutoff) {
			expired = append(expired, m)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, m := range expired {
		m.Close()
		logger.WithSessionID(m.ID()).Info("Expired idle checkout", "step", m.Step())
	}
	if len(expired) > 0 {
		s.observe(n)
	}
	return len(expired)
}

func (s *CheckoutService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown closes every session and its timers
func (s *CheckoutService) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*checkout.Machine)
	s.mu.Unlock()

	for _, m := range sessions {
		m.Close()
	}
	s.observe(0)
}

func (s *CheckoutService) observe(n int) {
	if s.gauge != nil {
		s.gauge.SetActiveSessions(n)
	}
}
