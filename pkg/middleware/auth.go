package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the Gin context key the verified user id is stored under.
const UserIDKey = "userID"

// TokenVerifier is the minimal interface the middleware depends on.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth returns a Gin middleware that verifies the Authorization bearer token
// and injects the bound user id into the request context.
func Auth(ver TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - No token provided"})
			return
		}
		userID, err := ver.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - Invalid token"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
