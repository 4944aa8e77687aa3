package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	pkgResponse "companion-bot/pkg/response"
)

// Auth guards admin routes with a static bearer token. When no token is
// configured the admin API is closed entirely rather than left open.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.adminToken == "" {
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(m.adminToken)) != 1 {
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
