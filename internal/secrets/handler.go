package secrets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mussab2003/secrets-app/internal/logger"
	"github.com/Mussab2003/secrets-app/internal/middleware"
	"github.com/Mussab2003/secrets-app/internal/principal"
)

// Handler serves the gated secret endpoints. Routes must be registered on a
// group behind middleware.GinRequireAuth.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/secrets", h.Get)
	g.PUT("/secrets", h.Put)
}

// Get returns the caller's current secret. The gate re-fetched the
// principal for this request, so the value is never stale.
func (h *Handler) Get(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"secret": p.Secret})
}

type putRequest struct {
	Secret string `json:"secret" binding:"required"`
}

func (h *Handler) Put(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req putRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.Set(c.Request.Context(), p.Email, req.Secret); err != nil {
		if errors.Is(err, principal.ErrUnavailable) {
			logger.Error("secret update store unavailable", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.Status(http.StatusNoContent)
}
