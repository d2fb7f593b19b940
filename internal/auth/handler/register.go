package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/logger"
	"github.com/Mussab2003/secrets-app/internal/principal"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register provisions a local account. Registration implies login, so a
// session is bound before the response goes out.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.credentials.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateAccount):
			c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
		case errors.Is(err, principal.ErrUnavailable):
			logger.Error("register store unavailable", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		default:
			logger.Error("register failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	if !h.issueSession(c, p) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}
