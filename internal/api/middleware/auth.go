package middleware

import (
	"net/http"
	"strings"

	"workhub/internal/api/permissions"
	"workhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware is a Gin middleware requiring a valid Bearer token.
// It resolves the token to the stored user so role changes apply
// immediately, and puts the resulting actor in the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Set("role", user.Role)
		c.Set(actorKey, permissions.Actor{
			ID:            user.ID,
			Role:          permissions.Role(user.Role),
			Authenticated: true,
		})

		c.Next()
	}
}

// OptionalAuthMiddleware resolves a token when one is present but lets
// anonymous requests through; read endpoints are open to everyone.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	required := AuthMiddleware(authService)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// ActorFromContext returns the authenticated actor, or the anonymous
// actor when the request carried no token.
func ActorFromContext(c *gin.Context) permissions.Actor {
	value, exists := c.Get(actorKey)
	if !exists {
		return permissions.Anonymous
	}
	actor, ok := value.(permissions.Actor)
	if !ok {
		return permissions.Anonymous
	}
	return actor
}

// RequireAdmin gates catalog writes behind the permission resolver.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if !permissions.ResolveCollection(actor, permissions.Unsafe, permissions.Catalog) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthenticated gates contribution writes (reviews, comments).
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if !permissions.ResolveCollection(actor, permissions.Unsafe, permissions.Contribution) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
