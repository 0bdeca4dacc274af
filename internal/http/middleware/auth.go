// README: Firebase bearer-token auth middleware and caller helpers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airporter/internal/infra"
)

const userContextKey = "authenticatedUser"

// AuthenticatedUser is the caller identity handlers work with. Roles come
// from custom claims; an empty slice means a plain customer.
type AuthenticatedUser struct {
	UID   string
	Email string
	Roles []string
}

// HasRole reports whether the caller carries the given role claim.
func (u AuthenticatedUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Auth verifies the Authorization bearer token and stores the caller identity
// in the request context. Requests without a valid token are rejected.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(userContextKey, userFromToken(token))
		c.Next()
	}
}

// RequireRole rejects callers lacking the role claim. Must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Caller(c)
		if !ok || !user.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// Caller returns the authenticated user set by Auth.
func Caller(c *gin.Context) (AuthenticatedUser, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return AuthenticatedUser{}, false
	}
	user, ok := v.(AuthenticatedUser)
	return user, ok
}

// CallerUID is a convenience accessor for the authenticated UID.
func CallerUID(c *gin.Context) string {
	user, _ := Caller(c)
	return user.UID
}

func userFromToken(token *infra.FirebaseToken) AuthenticatedUser {
	user := AuthenticatedUser{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if raw, ok := token.Claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if role, ok := r.(string); ok {
				user.Roles = append(user.Roles, role)
			}
		}
	}
	// Single-role claim written by older admin tooling.
	if role, ok := token.Claims["role"].(string); ok && role != "" && !user.HasRole(role) {
		user.Roles = append(user.Roles, role)
	}
	return user
}
