package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context or the underlying request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}

// GetRoleFromContext retrieves the authenticated user's role claim.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(roleKey)); exists {
		role, ok := v.(string)
		return role, ok
	}
	if v := c.Request.Context().Value(roleKey); v != nil {
		role, ok := v.(string)
		return role, ok
	}
	return "", false
}
