package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one planning session: a caller-owned Portfolio plus the lock that
// serializes every caller working on it.
type Session struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time

	mu        sync.Mutex
	portfolio *Portfolio
}

// NewSession wraps portfolio in a new session with a fresh id.
func NewSession(name string, portfolio *Portfolio) *Session {
	return &Session{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		portfolio: portfolio,
	}
}

// Validate ensures the session adheres to domain rules.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return errors.New("session id cannot be empty")
	}
	if s.portfolio == nil {
		return errors.New("session must have a portfolio")
	}
	return nil
}

// Do runs fn with exclusive access to the session's portfolio.
func (s *Session) Do(fn func(p *Portfolio) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.portfolio)
}
