package domain

import (
	"context"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for planning session storage
type SessionRepository interface {
	// Create stores a new session
	Create(ctx context.Context, session *Session) error

	// GetByID retrieves a session by its ID
	// Returns ErrSessionNotFound if no session has that ID
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// List retrieves every session, oldest first
	List(ctx context.Context) ([]*Session, error)

	// Delete removes a session
	// Returns ErrSessionNotFound if no session has that ID
	Delete(ctx context.Context, id uuid.UUID) error
}
