package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAuth adapts the net/http gate to gin. The gate stays
// framework-free; this bridge only moves the enriched request back into
// the gin context.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		auth.RequireAuth(next).ServeHTTP(c.Writer, c.Request)

		// the gate already wrote a response; stop the gin chain
		if c.Writer.Written() {
			c.Abort()
		}
	}
}
