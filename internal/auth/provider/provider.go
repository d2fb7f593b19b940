package provider

import (
	"context"

	"github.com/Mussab2003/secrets-app/internal/auth"
)

// OAuthProvider is the contract for an external identity provider. An
// implementation performs the handshake and returns identity facts only;
// provisioning and session decisions happen elsewhere.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the authorization URL. State and PKCE values
	// are supplied by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode trades the authorization code for a verified,
	// normalized identity.
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*auth.Identity, error)
}
