package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planhive/planhive-api/internal/auth"
	"github.com/planhive/planhive-api/internal/constants"
	apierrors "github.com/planhive/planhive-api/internal/errors"
)

// RequireAuth checks the Authorization header for a valid bearer token.
// A missing or malformed header yields 401, a token that fails validation
// (bad signature or expired) yields 403.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Access denied. No token provided.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := jwtManager.Validate(tokenString)
		if err != nil {
			apierrors.Forbidden(c, "Invalid or expired token.")
			c.Abort()
			return
		}

		// Store the decoded identity in context for downstream handlers
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
