package session

import (
	"context"
	"time"
)

// Session binds an opaque token to a principal reference. Only the email
// (the principal's identity key) is stored; the gate re-fetches the record
// per request, so mutations are never served stale.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"` // absolute, fixed at creation
}

// Expired reports whether the session's fixed TTL has elapsed at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store persists sessions keyed by token. Get returns (nil, nil) for an
// absent token; Delete of an absent token is not an error. Implementations
// must keep per-token operations linearizable.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
