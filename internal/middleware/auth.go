package middleware

import (
	"net/http"
	"strings"

	"gogett/config"
	"gogett/internal/auth"

	"github.com/gin-gonic/gin"
)

// TokenChecker reports whether an access token has been revoked.
type TokenChecker interface {
	IsBlacklisted(token string) bool
}

// AuthRequired validates the bearer JWT, rejects blacklisted tokens, and sets
// courier_id, public_id and the raw token in the gin context.
func AuthRequired(cfg *config.JWTConfig, blacklist TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "invalid or expired token"})
			return
		}
		if blacklist != nil && blacklist.IsBlacklisted(parts[1]) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "token revoked"})
			return
		}
		c.Set("courier_id", claims.CourierID)
		c.Set("public_id", claims.PublicID)
		c.Set("token", parts[1])
		c.Set("claims", claims)
		c.Next()
	}
}

// GetCourierID returns the authenticated courier ID (must be used after AuthRequired).
func GetCourierID(c *gin.Context) uint {
	v, _ := c.Get("courier_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}

// GetToken returns the raw bearer token from the context.
func GetToken(c *gin.Context) string {
	v, _ := c.Get("token")
	if v == nil {
		return ""
	}
	return v.(string)
}
