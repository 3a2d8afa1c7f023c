package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/illineats/backend/internal/logging"
)

// AdminKeyHeader carries the shared admin key.
const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards administrative routes with a key checked against a bcrypt
// hash. An empty hash disables the routes.
func AdminKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			return
		}
		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing admin key"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			logging.Ctx(c.Request.Context()).Warn().Str("ip", c.ClientIP()).Msg("Rejected admin key")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid admin key"})
			return
		}
		c.Next()
	}
}
