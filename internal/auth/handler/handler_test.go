package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/auth/credentials"
	"github.com/Mussab2003/secrets-app/internal/auth/federated"
	"github.com/Mussab2003/secrets-app/internal/auth/provider"
	"github.com/Mussab2003/secrets-app/internal/principal"
	"github.com/Mussab2003/secrets-app/internal/session"
)

type rig struct {
	router     *gin.Engine
	principals principal.Store
	sessions   *session.Manager
}

func newRig(t *testing.T, principals principal.Store, providers ...provider.OAuthProvider) *rig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(session.NewMemoryStore(), session.DefaultTTL)
	credentialService := credentials.NewService(principals)
	strategies := auth.NewStrategies(credentialService, federated.NewService(principals))

	h := NewHandler(provider.NewRegistry(providers...), strategies, credentialService, sessions)

	router := gin.New()
	h.RegisterRoutes(router)

	return &rig{router: router, principals: principals, sessions: sessions}
}

func (r *rig) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestRegister_CreatesAccountAndSession(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	rec := r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com", "password": "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie, "registration implies login")
	require.NotEmpty(t, cookie.Value)

	sess, err := r.sessions.Resolve(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "alice@example.com", sess.Email)

	p, err := r.principals.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, p.HasLocalPassword())
}

func TestRegister_Duplicate(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	rec := r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com", "password": "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com", "password": "pw2"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestRegister_MalformedBody(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	rec := r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com", "password": "pw1"})

	rec := r.postJSON(t, "/auth/login", gin.H{"email": "alice@example.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)

	sess, err := r.sessions.Resolve(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "alice@example.com", sess.Email)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com", "password": "pw1"})

	wrongPw := r.postJSON(t, "/auth/login", gin.H{"email": "alice@example.com", "password": "pw2"})
	unknown := r.postJSON(t, "/auth/login", gin.H{"email": "ghost@example.com", "password": "pw1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// same status and same body: no account enumeration
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
	assert.Nil(t, sessionCookie(t, wrongPw))
	assert.Nil(t, sessionCookie(t, unknown))
}

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

func TestLogin_StoreOutageIsNot401(t *testing.T) {
	r := newRig(t, downStore{})

	rec := r.postJSON(t, "/auth/login", gin.H{"email": "alice@example.com", "password": "pw1"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com", "password": "pw1"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	rec := r.postJSON(t, "/auth/register", gin.H{"email": "alice@example.com", "password": "pw1"})
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie.Value})
	out := httptest.NewRecorder()
	r.router.ServeHTTP(out, req)

	assert.Equal(t, http.StatusNoContent, out.Code)

	sess, err := r.sessions.Resolve(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Nil(t, sess)

	cleared := sessionCookie(t, out)
	require.NotNil(t, cleared)
	assert.Equal(t, "", cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestLogout_WithoutSessionIsIdempotent(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	r.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// stubIdP plays the provider side of the OAuth handshake: it records what
// the callback sends to the token endpoint and answers with a canned
// identity or a canned failure.
type stubIdP struct {
	identity    *auth.Identity
	exchangeErr error

	gotCode     string
	gotVerifier string
}

func (s *stubIdP) Name() string { return "google" }

func (s *stubIdP) AuthCodeURL(state, codeChallenge string) string {
	return "https://idp.test/auth?state=" + state + "&code_challenge=" + codeChallenge
}

func (s *stubIdP) ExchangeCode(ctx context.Context, code, codeVerifier string) (*auth.Identity, error) {
	s.gotCode = code
	s.gotVerifier = codeVerifier
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return s.identity, nil
}

// startOAuth performs the login leg and hands back the state value plus the
// flow cookies the browser would replay on the callback.
func startOAuth(t *testing.T, r *rig) (state string, cookies []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/oauth/login/google", nil)
	rec := httptest.NewRecorder()
	r.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)

	for _, c := range rec.Result().Cookies() {
		cookies = append(cookies, c)
		if c.Name == "__oauth_state" {
			state = c.Value
		}
	}
	require.NotEmpty(t, state)
	return state, cookies
}

func (r *rig) oauthCallback(t *testing.T, query string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/oauth/callback/google?"+query, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.router.ServeHTTP(rec, req)
	return rec
}

func TestOAuthCallback_Success(t *testing.T) {
	idp := &stubIdP{identity: &auth.Identity{
		Provider:       "google",
		ProviderUserID: "sub-123",
		Email:          "alice@example.com",
		EmailVerified:  true,
	}}
	r := newRig(t, principal.NewMemoryStore(), idp)

	state, cookies := startOAuth(t, r)
	rec := r.oauthCallback(t, "state="+state+"&code=authcode", cookies)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/secrets", rec.Header().Get("Location"))
	assert.Equal(t, "authcode", idp.gotCode)
	assert.NotEmpty(t, idp.gotVerifier)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	sess, err := r.sessions.Resolve(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "alice@example.com", sess.Email)

	// first sight auto-provisions a federated-only account
	p, err := r.principals.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, p.HasLocalPassword())
}

func TestOAuthCallback_ProviderErrorNeverLogsIn(t *testing.T) {
	idp := &stubIdP{identity: &auth.Identity{Email: "alice@example.com"}}
	r := newRig(t, principal.NewMemoryStore(), idp)

	state, cookies := startOAuth(t, r)
	rec := r.oauthCallback(t, "state="+state+"&error=access_denied", cookies)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookie(t, rec))
	assert.Empty(t, idp.gotCode, "an aborted handshake must not reach the token endpoint")
}

func TestOAuthCallback_ExchangeFailureNeverLogsIn(t *testing.T) {
	idp := &stubIdP{exchangeErr: errors.New("idp: invalid_grant")}
	r := newRig(t, principal.NewMemoryStore(), idp)

	state, cookies := startOAuth(t, r)
	rec := r.oauthCallback(t, "state="+state+"&code=authcode", cookies)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookie(t, rec))
}

func TestOAuthCallback_StateMismatch(t *testing.T) {
	idp := &stubIdP{identity: &auth.Identity{Email: "alice@example.com"}}
	r := newRig(t, principal.NewMemoryStore(), idp)

	_, cookies := startOAuth(t, r)
	rec := r.oauthCallback(t, "state=forged&code=authcode", cookies)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
	assert.Empty(t, idp.gotCode)
}

func TestOAuthCallback_StoreOutage(t *testing.T) {
	idp := &stubIdP{identity: &auth.Identity{Email: "alice@example.com"}}
	r := newRig(t, downStore{}, idp)

	state, cookies := startOAuth(t, r)
	rec := r.oauthCallback(t, "state="+state+"&code=authcode", cookies)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLoginEntry_Route(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	r.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
}

func TestOAuthLogin_UnknownProvider(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/oauth/login/myspace", nil)
	rec := httptest.NewRecorder()
	r.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOAuthCallback_MissingState(t *testing.T) {
	r := newRig(t, principal.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback/myspace?code=abc", nil)
	rec := httptest.NewRecorder()
	r.router.ServeHTTP(rec, req)

	// unknown provider is checked first, then state
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
