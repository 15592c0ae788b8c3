package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/constants"
	apierrors "github.com/rentspot/rentspot-api/internal/errors"
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/token"
)

// RequireAuth verifies the bearer token and stores the caller's id and role
// in the request context.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			apierrors.Unauthorized(c, "Please login first")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired login, please try again")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates a route to admin callers. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok || role != models.RoleAdmin {
			apierrors.Forbidden(c, "Access denied. Admin role required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLandlord gates a route to landlord or admin callers. Must run after
// RequireAuth.
func RequireLandlord() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok || (role != models.RoleLandlord && role != models.RoleAdmin) {
			apierrors.Forbidden(c, "Access denied. Landlord or admin role required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	role, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return 0, false
	}

	switch v := role.(type) {
	case models.UserRole:
		return v, true
	case int:
		return models.UserRole(v), true
	default:
		return 0, false
	}
}
