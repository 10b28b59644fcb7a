package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// UserHeader is the request header carrying the acting user's ID, set by the
// upstream gateway after authentication.
const UserHeader = "X-User-ID"

// UserResolver creates a Gin middleware that copies the acting user's ID from
// the trusted gateway header into the Gin context for audit attribution.
func UserResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + UserHeader + " header"})
			return
		}
		c.Set(string(userIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
