package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/auth/credentials"
	"github.com/Mussab2003/secrets-app/internal/auth/provider"
	"github.com/Mussab2003/secrets-app/internal/logger"
	"github.com/Mussab2003/secrets-app/internal/principal"
	"github.com/Mussab2003/secrets-app/internal/session"
)

// Handler owns the authentication endpoints: local register/login/logout
// and the OAuth login/callback pair.
type Handler struct {
	providers   *provider.Registry
	strategies  *auth.Strategies
	credentials *credentials.Service
	sessions    *session.Manager
}

func NewHandler(
	registry *provider.Registry,
	strategies *auth.Strategies,
	credentialService *credentials.Service,
	sessions *session.Manager,
) *Handler {
	return &Handler{
		providers:   registry,
		strategies:  strategies,
		credentials: credentialService,
		sessions:    sessions,
	}
}

// loginPath is where failed OAuth attempts land. The surface is JSON-only,
// so the route answers with a machine-readable prompt instead of a page.
const loginPath = "/login"

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET(loginPath, h.loginEntry)
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

func (h *Handler) loginEntry(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

// issueSession binds a session for the principal and hands the token to
// the browser. Both registration and login funnel through here.
func (h *Handler) issueSession(c *gin.Context, p *principal.Principal) bool {
	sess, err := h.sessions.Bind(c.Request.Context(), p.Email)
	if err != nil {
		logger.Error("session bind failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return false
	}

	session.SetCookie(c.Writer, sess.ID, sess.ExpiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	return true
}

func (h *Handler) oauthLogin(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid state"})
		return
	}

	// the provider reported a failed or aborted handshake; send the user
	// back to the login entry point, never into a session
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", map[string]any{
			"provider": providerName,
		})
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing pkce verifier"})
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		logger.Error("oauth code exchange failed", map[string]any{
			"provider": providerName,
			"error":    errors.Join(auth.ErrProvider, err).Error(),
		})
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	strategy, err := h.strategies.Select(auth.StrategyFederated)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	pr, err := strategy.Authenticate(c.Request.Context(), auth.Credential{
		Kind:     auth.StrategyFederated,
		Identity: identity,
	})
	if err != nil {
		logger.Error("federated authenticate failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		if errors.Is(err, principal.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	if !h.issueSession(c, pr) {
		return
	}

	c.Redirect(http.StatusFound, "/secrets")
}

func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Unbind(c.Request.Context(), cookie.Value); err != nil {
			logger.Warn("session unbind failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
