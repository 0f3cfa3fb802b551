package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor_id"

// Middleware resolves the bearer token on each request and, when valid,
// stores the actor's user ID in the gin context. It does not reject
// unauthenticated requests; handlers that need an actor use RequireActor
// or ActorID.
func Middleware(service AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token != "" {
			if actorID, err := service.Actor(c.Request.Context(), token); err == nil {
				c.Set(actorContextKey, actorID)
			}
		}
		c.Next()
	}
}

// RequireActor aborts with 401 when no authenticated actor is present
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(actorContextKey); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated actor's user ID, or "" when absent
func ActorID(c *gin.Context) string {
	if actorID, ok := c.Get(actorContextKey); ok {
		if id, ok := actorID.(string); ok {
			return id
		}
	}
	return ""
}

func bearerToken(authHeader string) string {
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
