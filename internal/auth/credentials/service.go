package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/principal"
)

// Service is the local credential strategy: it verifies email/password
// attempts against the principal store and provisions new local accounts.
type Service struct {
	store principal.Store
}

func NewService(store principal.Store) *Service {
	return &Service{store: store}
}

// Authenticate implements auth.Strategy for password credentials. An absent
// account and a wrong password both come back as ErrIncorrectCredentials;
// store failures propagate as principal.ErrUnavailable.
func (s *Service) Authenticate(ctx context.Context, cred auth.Credential) (*principal.Principal, error) {
	if cred.Kind != auth.StrategyLocal {
		return nil, fmt.Errorf("local strategy: unexpected credential kind %s", cred.Kind)
	}

	p, err := s.store.FindByEmail(ctx, cred.Email)
	if err != nil {
		if errors.Is(err, principal.ErrNotFound) {
			return nil, auth.ErrIncorrectCredentials
		}
		return nil, err
	}

	if !VerifyPassword(p.PasswordHash, cred.Password) {
		return nil, auth.ErrIncorrectCredentials
	}

	return p, nil
}

// Register provisions a principal with a hashed local password. The store's
// unique constraint is the only duplicate guard, so concurrent registrations
// for one email cannot both succeed.
func (s *Service) Register(ctx context.Context, email, password string) (*principal.Principal, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p, err := s.store.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, principal.ErrDuplicateEmail) {
			return nil, auth.ErrDuplicateAccount
		}
		return nil, err
	}

	return p, nil
}
