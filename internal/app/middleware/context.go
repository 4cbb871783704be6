package middleware

import (
	"github.com/gin-gonic/gin"
)

// GetUserID returns the authenticated user's ID from the request context.
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetLogin returns the authenticated user's login.
func GetLogin(c *gin.Context) (string, bool) {
	login, exists := c.Get("login")
	if !exists {
		return "", false
	}
	return login.(string), true
}

// IsModerator reports whether the authenticated user is a moderator.
func IsModerator(c *gin.Context) bool {
	isModerator, exists := c.Get("is_moderator")
	if !exists {
		return false
	}
	return isModerator.(bool)
}
