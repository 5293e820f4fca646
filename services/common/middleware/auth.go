package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/auth"
)

// RequireRole admits requests carrying a valid bearer token whose "role"
// claim equals role. The subject and role are stored as "userID" and "role".
func RequireRole(parser *auth.TokenParser, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := auth.BearerToken(c.GetHeader("Authorization"))
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, err := parser.Parse(tok, "")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if auth.StringClaim(claims, "role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": role + " role required"})
			return
		}
		c.Set("userID", auth.StringClaim(claims, "sub"))
		c.Set("role", role)
		c.Next()
	}
}
