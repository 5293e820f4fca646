package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/auth"
)

const UserContextKey = "userID"

// ShopperAuth identifies the shopper whose lists and cart a request touches.
// A bearer token wins and must be valid; otherwise the gateway-injected
// X-User-ID header or the user_id cookie is used.
func ShopperAuth(parser *auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID string

		if tok := auth.BearerToken(c.GetHeader("Authorization")); tok != "" && parser.Enabled() {
			claims, err := parser.Parse(tok, "")
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				c.Abort()
				return
			}
			userID = auth.StringClaim(claims, "sub")
		}
		if userID == "" {
			userID = c.GetHeader("X-User-ID")
		}
		if userID == "" {
			if v, err := c.Cookie("user_id"); err == nil && v != "" {
				userID = v
			}
		}

		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}

// GetUserID extracts the shopper ID from the Gin context.
func GetUserID(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("user ID not found in context")
}
