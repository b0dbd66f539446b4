package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farmkart/farmkart-api/internal/auth"
	"github.com/farmkart/farmkart-api/internal/model"
)

const principalKey = "principal"

const sessionCookie = "fk_token"

type PrincipalLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Auth parses the access token, loads the account behind it and stores the
// principal on the request context. Suspended accounts are rejected here so
// no handler has to re-check.
func Auth(parser *auth.Parser, users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(sessionCookie)
		raw := auth.ExtractToken(c.GetHeader("Authorization"), cookie)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := parser.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if user.IsSuspended {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account suspended"})
			return
		}

		c.Set(principalKey, model.NewPrincipal(user))
		c.Next()
	}
}

// RequireRoles guards a route group to the given roles. Runs after Auth.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
			return
		}
		if !allowed[principal.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}

// SessionCookie is the cookie name the auth handlers set and clear.
func SessionCookie() string { return sessionCookie }
