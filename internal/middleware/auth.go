package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mussab2003/secrets-app/internal/logger"
	"github.com/Mussab2003/secrets-app/internal/principal"
	"github.com/Mussab2003/secrets-app/internal/session"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// PrincipalFromContext extracts the authenticated principal placed by
// RequireAuth.
func PrincipalFromContext(ctx context.Context) (*principal.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*principal.Principal)
	return p, ok
}

// AuthMiddleware is the authorization gate: it resolves the session cookie
// and re-fetches the principal record, so protected handlers always see the
// current row. It performs no writes of its own.
type AuthMiddleware struct {
	Sessions   *session.Manager
	Principals principal.Store
}

func NewAuthMiddleware(sessions *session.Manager, principals principal.Store) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions, Principals: principals}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sess, err := a.Sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			logger.Error("gate session resolve failed", map[string]any{
				"error": err.Error(),
			})
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		if sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := a.Principals.FindByEmail(r.Context(), sess.Email)
		if err != nil {
			if errors.Is(err, principal.ErrNotFound) {
				// session outlived its principal
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			logger.Error("gate principal lookup failed", map[string]any{
				"error": err.Error(),
			})
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
