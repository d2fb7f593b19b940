package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/logger"
	"github.com/Mussab2003/secrets-app/internal/principal"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	strategy, err := h.strategies.Select(auth.StrategyLocal)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	p, err := strategy.Authenticate(c.Request.Context(), auth.Credential{
		Kind:     auth.StrategyLocal,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, principal.ErrUnavailable) {
			logger.Error("login store unavailable", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}
		// one answer for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !h.issueSession(c, p) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged_in"})
}
