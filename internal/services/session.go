package services

import (
	"context"
	"sync"
	"time"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

const sessionIDPrefix = "SES"

// Session binds one orchestrator to an opaque session id for the delivery
// layer. Sessions expire after the configured idle TTL.
type Session struct {
	ID           string
	Orchestrator *Orchestrator

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionService owns the live transaction flows. One session is one
// orchestrator; creating a session selects the category, which is fixed for
// the session's lifetime.
type SessionService interface {
	Create(ctx context.Context, category models.ProviderCategory, userID string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Remove(ctx context.Context, id string) error
	// StartJanitor evicts idle sessions until the context is cancelled.
	StartJanitor(ctx context.Context)
}

type sessionManager struct {
	srv *Services

	mu       sync.Mutex
	sessions map[string]*Session
}

func newSessionManager(srv *Services) SessionService {
	return &sessionManager{
		srv:      srv,
		sessions: map[string]*Session{},
	}
}

func (m *sessionManager) Create(ctx context.Context, category models.ProviderCategory, userID string) (sess *Session, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if !category.Valid() {
		return nil, common.ErrInvalidCategory
	}

	orch := newOrchestrator(m.srv, category, userID)
	m.srv.Dispatcher.Watch(orch)

	sess = &Session{
		ID:           m.srv.idGenerator.Generate(sessionIDPrefix),
		Orchestrator: orch,
		lastSeen:     time.Now(),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	log.Info(ctx, "[SESSION] created",
		log.String("sessionId", sess.ID), log.String("category", string(category)))
	return sess, nil
}

func (m *sessionManager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		return nil, common.ErrSessionNotFound
	}
	sess.touch(time.Now())
	return sess, nil
}

func (m *sessionManager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return common.ErrSessionNotFound
	}
	sess.Orchestrator.Close()
	return nil
}

func (m *sessionManager) StartJanitor(ctx context.Context) {
	ttl := m.srv.conf.Orchestrator.SessionTTL
	ticker := time.NewTicker(ttl / 4)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.evictIdle(ctx, now, ttl)
			}
		}
	}()
}

func (m *sessionManager) evictIdle(ctx context.Context, now time.Time, ttl time.Duration) {
	m.mu.Lock()
	var stale []*Session
	for id, sess := range m.sessions {
		// Never evict mid-submission; the flow must reach a terminal
		// phase first.
		if sess.idleSince(now) >= ttl && sess.Orchestrator.State().Phase != models.PhaseSubmitting {
			delete(m.sessions, id)
			stale = append(stale, sess)
		}
	}
	m.mu.Unlock()

	for _, sess := range stale {
		sess.Orchestrator.Close()
		log.Info(ctx, "[SESSION] evicted idle session", log.String("sessionId", sess.ID))
	}
}
