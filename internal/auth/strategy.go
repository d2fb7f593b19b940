package auth

import (
	"context"
	"fmt"

	"github.com/Mussab2003/secrets-app/internal/principal"
)

// StrategyKind names one of the closed set of verification strategies.
// Call sites pick a kind explicitly; there is no string-keyed registry.
type StrategyKind int

const (
	StrategyLocal StrategyKind = iota
	StrategyFederated
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyLocal:
		return "local"
	case StrategyFederated:
		return "federated"
	default:
		return fmt.Sprintf("strategy(%d)", int(k))
	}
}

// Credential is a one-shot authentication attempt: either an email/password
// pair (local) or a provider identity (federated), tagged by Kind. It is
// never persisted.
type Credential struct {
	Kind StrategyKind

	// local
	Email    string
	Password string

	// federated
	Identity *Identity
}

// Strategy resolves a credential attempt to a principal or a typed failure.
type Strategy interface {
	Authenticate(ctx context.Context, cred Credential) (*principal.Principal, error)
}

// Strategies holds one implementation per kind.
type Strategies struct {
	local     Strategy
	federated Strategy
}

func NewStrategies(local, federated Strategy) *Strategies {
	return &Strategies{local: local, federated: federated}
}

func (s *Strategies) Select(kind StrategyKind) (Strategy, error) {
	switch kind {
	case StrategyLocal:
		return s.local, nil
	case StrategyFederated:
		return s.federated, nil
	default:
		return nil, fmt.Errorf("unknown auth strategy: %s", kind)
	}
}
