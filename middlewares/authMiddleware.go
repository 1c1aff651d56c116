package middlewares

import (
	"log"
	"net/http"
	"strings"

	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding the verified token claims.
const ClaimsKey = "claims"

// AuthMiddleware verifies the bearer token and stores the decoded claims in
// the request context.
func AuthMiddleware(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		// Extracting token from "Bearer <token>" format
		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			msg := "Invalid authorization token"
			if err == utils.ErrTokenExpired {
				msg = "Token has expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// RequireRole rejects requests whose token role is not one of the allowed
// roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		c.Abort()
	}
}

// GetClaims returns the verified claims stored by AuthMiddleware, or nil.
func GetClaims(c *gin.Context) *utils.Claims {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}
