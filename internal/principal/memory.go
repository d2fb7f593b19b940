package principal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Store with the same uniqueness semantics as
// the Postgres implementation. It backs tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*Principal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]*Principal)}
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *p
	return &cp, nil
}

func (s *MemoryStore) Insert(ctx context.Context, email, passwordHash string) (*Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return nil, ErrDuplicateEmail
	}

	now := time.Now()
	p := &Principal{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byEmail[email] = p

	cp := *p
	return &cp, nil
}

func (s *MemoryStore) UpdateSecret(ctx context.Context, email, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byEmail[email]
	if !ok {
		return ErrNotFound
	}

	v := secret
	p.Secret = &v
	p.UpdatedAt = time.Now()

	return nil
}
