package federated

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/principal"
)

// Service is the federated strategy: it exchanges a provider-asserted
// identity for a local principal, provisioning one on first sight.
type Service struct {
	store principal.Store
}

func NewService(store principal.Store) *Service {
	return &Service{store: store}
}

// Authenticate implements auth.Strategy for provider identities. Repeated
// logins for one email always resolve to the same principal: the first-sight
// insert is guarded by the store's unique constraint, and losing that race
// falls back to the winner's row.
func (s *Service) Authenticate(ctx context.Context, cred auth.Credential) (*principal.Principal, error) {
	if cred.Kind != auth.StrategyFederated {
		return nil, fmt.Errorf("federated strategy: unexpected credential kind %s", cred.Kind)
	}
	if cred.Identity == nil || cred.Identity.Email == "" {
		return nil, fmt.Errorf("%w: identity missing email", auth.ErrProvider)
	}

	p, err := s.store.FindByEmail(ctx, cred.Identity.Email)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, principal.ErrNotFound) {
		return nil, err
	}

	p, err = s.store.Insert(ctx, cred.Identity.Email, principal.SentinelPasswordHash)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, principal.ErrDuplicateEmail) {
		// a concurrent login provisioned the account first
		return s.store.FindByEmail(ctx, cred.Identity.Email)
	}

	return nil, err
}
