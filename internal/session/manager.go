package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager owns the live sessions and the cross-view answer carryover. Saved
// answers are keyed by quiz ID and consumed at most once: the next Start for
// the same quiz clears them whether or not it resumes.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	saved    map[string][]SavedAnswer
}

func NewManager() *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		saved:    map[string][]SavedAnswer{},
	}
}

// Start builds a new randomized session for def. When resume is true, any
// answers saved by a previous Exit on the same quiz are merged in; either
// way the carryover is cleared. A retake is always a brand-new attempt.
func (m *Manager) Start(def quiz.Quiz, resume bool) (*Session, error) {
	m.mu.Lock()
	saved := m.saved[def.ID]
	delete(m.saved, def.ID)
	m.mu.Unlock()

	if !resume {
		saved = nil
	}
	s, err := New(uuid.NewString(), def, saved)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Exit captures the session's answers for a later resume of the same quiz and
// discards the session.
func (m *Manager) Exit(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	saved := s.Exit()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[s.attempt.Quiz.ID] = saved
	delete(m.sessions, id)
	return nil
}

// End discards a finished session without capturing anything.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
