package usecase

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gofrs/uuid/v5"

	"svw.info/sumgrid/internal/ports"
	"svw.info/sumgrid/internal/session"
)

// ErrNotFound is returned for session ids with no live session.
var ErrNotFound = errors.New("session not found")

// Service owns the live sessions on behalf of the presentation
// adapter. Each session serializes its own intent stream; the registry
// lock only guards the map.
type Service struct {
	cfg    session.Config
	gen    ports.Generator
	sched  ports.Scheduler
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session.Session
}

func NewService(cfg session.Config, g ports.Generator, sch ports.Scheduler, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		gen:      g,
		sched:    sch,
		logger:   logger,
		sessions: make(map[uuid.UUID]*session.Session),
	}
}

// Create starts a new session at the given level.
func (s *Service) Create(level int) (uuid.UUID, *session.Session) {
	id := uuid.Must(uuid.NewV4())
	sess := session.New(s.cfg, s.gen, s.sched, s.logger.With("session", id.String()), level)
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id, sess
}

func (s *Service) Get(id uuid.UUID) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Remove closes and forgets a session.
func (s *Service) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Close()
	delete(s.sessions, id)
	return nil
}

// Close shuts down every live session.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.Close()
		delete(s.sessions, id)
	}
}
