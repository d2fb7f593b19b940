// Package secrets holds the one protected feature of the app: a free-form
// per-user secret stored alongside the principal record.
package secrets

import (
	"context"

	"github.com/Mussab2003/secrets-app/internal/principal"
)

type Service struct {
	store principal.Store
}

func NewService(store principal.Store) *Service {
	return &Service{store: store}
}

// Set replaces the secret for the principal identified by email.
func (s *Service) Set(ctx context.Context, email, secret string) error {
	return s.store.UpdateSecret(ctx, email, secret)
}
