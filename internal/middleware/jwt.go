package middleware

import (
	"net/http"                 // HTTP status codes
	"strings"                  // String manipulation
	"todo_app/internal/domain" // Identity value
	"todo_app/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookie is the cookie the login handler sets so browser page loads
// carry the session without an Authorization header
const SessionCookie = "session_token"

// identityKey is the gin context key holding the resolved identity
const identityKey = "identity"

// ResolveIdentity checks the request's credentials and returns the caller's
// identity, or nil when the request is anonymous or the token is invalid.
// The Authorization header wins over the session cookie.
func ResolveIdentity(c *gin.Context, secret string) *domain.Identity {
	tokenStr := "" // Token string, empty when no credentials are present
	// Prefer the Authorization header
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenStr = strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
	} else if cookie, err := c.Cookie(SessionCookie); err == nil {
		tokenStr = cookie // Fall back to the session cookie
	}
	// No credentials at all means anonymous
	if tokenStr == "" {
		return nil
	}
	claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
	if err != nil {
		return nil // Invalid or expired token resolves to anonymous
	}
	return claims.Identity() // Return the identity carried in the claims
}

// CurrentIdentity returns the identity resolved by the middleware, or nil
func CurrentIdentity(c *gin.Context) *domain.Identity {
	if v, exists := c.Get(identityKey); exists {
		if ident, ok := v.(*domain.Identity); ok {
			return ident
		}
	}
	return nil
}

// JWTAuthMiddleware validates the session and stores the caller's identity
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := ResolveIdentity(c, secret) // Resolve the caller
		// Check that the request carries a valid session
		if ident == nil {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(identityKey, ident) // Store identity in context
		c.Next()                  // Proceed to the next handler
	}
}
