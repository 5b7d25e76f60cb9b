package middleware

import (
	"net/http"
	"strings"

	"digest-service/auth"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key the JWT middleware sets for
// downstream handlers.
const ContextUserID = "userId"

// JWTAuthMiddleware validates the Authorization bearer token and stores
// the authenticated user id on the request context.
func JWTAuthMiddleware(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
