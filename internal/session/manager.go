package session

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the fixed session lifetime, counted from creation.
// It is not extended by activity.
const DefaultTTL = 24 * time.Hour

// ErrInvalidSession marks a token that cannot reference any session,
// e.g. an empty cookie value.
var ErrInvalidSession = errors.New("invalid session token")

// Manager owns the binding between principals and session tokens: it is
// the only writer of the serialize/deserialize contract over a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// Bind creates a session for the principal identified by email and returns
// it with a freshly generated token.
func (m *Manager) Bind(ctx context.Context, email string) (Session, error) {
	token, err := GenerateID()
	if err != nil {
		return Session{}, err
	}

	now := m.now()
	s := Session{
		ID:        token,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, s); err != nil {
		return Session{}, err
	}

	return s, nil
}

// Resolve returns the live session for the token, or nil when the token is
// unknown or expired. An expired entry is dropped from the store on sight,
// which covers stores without native TTL.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	s, err := m.store.Get(ctx, token)
	if err != nil || s == nil {
		return nil, err
	}

	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return nil, nil
	}

	return s, nil
}

// Unbind invalidates the token. Unbinding an absent token is a no-op.
func (m *Manager) Unbind(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}
