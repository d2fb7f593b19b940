package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/principal"
)

// downStore simulates a store outage on every call.
type downStore struct{}

func (downStore) FindByEmail(context.Context, string) (*principal.Principal, error) {
	return nil, principal.ErrUnavailable
}

func (downStore) Insert(context.Context, string, string) (*principal.Principal, error) {
	return nil, principal.ErrUnavailable
}

func (downStore) UpdateSecret(context.Context, string, string) error {
	return principal.ErrUnavailable
}

func localCredential(email, password string) auth.Credential {
	return auth.Credential{Kind: auth.StrategyLocal, Email: email, Password: password}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(principal.NewMemoryStore())

	registered, err := svc.Register(ctx, "alice@example.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", registered.Email)
	assert.NotEqual(t, "pw1", registered.PasswordHash)
	assert.Nil(t, registered.Secret)

	got, err := svc.Authenticate(ctx, localCredential("alice@example.com", "pw1"))
	require.NoError(t, err)
	assert.Equal(t, registered.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(principal.NewMemoryStore())

	_, err := svc.Register(ctx, "alice@example.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, localCredential("alice@example.com", "pw2"))
	assert.ErrorIs(t, err, auth.ErrIncorrectCredentials)
}

func TestAuthenticate_UnknownEmailSameFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewService(principal.NewMemoryStore())

	// absent account and wrong password must be indistinguishable
	_, err := svc.Authenticate(ctx, localCredential("nobody@example.com", "pw1"))
	assert.ErrorIs(t, err, auth.ErrIncorrectCredentials)
}

func TestAuthenticate_RejectsForeignCredentialKind(t *testing.T) {
	svc := NewService(principal.NewMemoryStore())

	_, err := svc.Authenticate(context.Background(), auth.Credential{Kind: auth.StrategyFederated})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrIncorrectCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := principal.NewMemoryStore()
	svc := NewService(store)

	first, err := svc.Register(ctx, "alice@example.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "other-pw")
	assert.ErrorIs(t, err, auth.ErrDuplicateAccount)

	// the first principal is untouched
	got, err := store.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.PasswordHash, got.PasswordHash)
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewService(principal.NewMemoryStore())

	_, err := svc.Register(ctx, "alice@example.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice@example.com", "pw1")
	assert.NoError(t, err)
}

func TestService_StoreOutageIsNotBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewService(downStore{})

	_, err := svc.Authenticate(ctx, localCredential("alice@example.com", "pw1"))
	assert.ErrorIs(t, err, principal.ErrUnavailable)
	assert.NotErrorIs(t, err, auth.ErrIncorrectCredentials)

	_, err = svc.Register(ctx, "alice@example.com", "pw1")
	assert.ErrorIs(t, err, principal.ErrUnavailable)
	assert.NotErrorIs(t, err, auth.ErrDuplicateAccount)
}
