package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
)

const stateCookieName = "__oauth_state"

// generateState issues a single-use CSRF state value, mirrored into a flow
// cookie for the callback to compare against.
func generateState(c *gin.Context) string {
	state := randomToken()
	setFlowCookie(c, stateCookieName, state)
	return state
}

func validateState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	if stateQuery == "" {
		return false
	}

	stored := flowCookie(c, stateCookieName)
	if stored == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(stateQuery)) == 1
}
