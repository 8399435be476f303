package middleware

import (
	"net/http"
	"strings"

	"productivity_tracker/internal/query"
	"productivity_tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

const IdentityKey = "authIdentity"

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header format"})
			return
		}

		tokenString := parts[1]
		claims, err := jwtUtil.ValidateAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		// Set caller identity in context
		c.Set(IdentityKey, query.Identity{UserID: claims.UserID, Role: claims.Role})

		c.Next()
	}
}

// AuthIdentity returns the authenticated identity set by JWTAuthMiddleware.
func AuthIdentity(c *gin.Context) (query.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return query.Identity{}, false
	}
	ident, ok := val.(query.Identity)
	return ident, ok
}
