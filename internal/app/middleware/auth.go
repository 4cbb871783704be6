package middleware

import (
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/app/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	jwtPrefix = "Bearer "
)

// AuthMiddleware validates the JWT and puts the user into the context.
func AuthMiddleware(repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, jwtPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, jwtPrefix)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is empty"})
			c.Abort()
			return
		}

		// Reject tokens invalidated by a logout (when redis is up).
		if repo.GetRedisClient() != nil {
			inBlacklist, err := repo.GetRedisClient().IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				logrus.Error("Failed to check token in blacklist: ", err)
			} else if inBlacklist {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalidated"})
				c.Abort()
				return
			}
		}

		claims, err := utils.ValidateToken(tokenString, repo.Config().JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("login", claims.Login)
		c.Set("is_moderator", claims.IsModerator)

		logrus.Debugf("User authenticated: %s (ID: %d, Moderator: %t)",
			claims.Login, claims.UserID, claims.IsModerator)

		c.Next()
	}
}

// ModeratorOnly requires a moderator account; AuthMiddleware must run first.
func ModeratorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isModerator, exists := c.Get("is_moderator")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !isModerator.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Moderator access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth populates the context when a valid token is present but
// never rejects the request.
func OptionalAuth(repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, jwtPrefix) {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, jwtPrefix)
		if tokenString == "" {
			c.Next()
			return
		}

		if repo.GetRedisClient() != nil {
			inBlacklist, err := repo.GetRedisClient().IsInBlacklist(c.Request.Context(), tokenString)
			if err == nil && inBlacklist {
				c.Next()
				return
			}
		}

		claims, err := utils.ValidateToken(tokenString, repo.Config().JWTSecret)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("login", claims.Login)
		c.Set("is_moderator", claims.IsModerator)

		c.Next()
	}
}
