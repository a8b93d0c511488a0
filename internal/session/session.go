package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side record of an authenticated identity. The
// browser only ever holds an opaque reference to it; role and identity
// are always read back from the store.
type Session struct {
	ID       string    `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	FullName string    `json:"full_name"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store owns session lifecycle. Get must not return expired sessions.
// Delete is idempotent: deleting a missing session is not an error.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
