package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // Path prefix checks

	"github.com/gin-gonic/gin" // Gin web framework
)

// Page routes the guard redirects between
const (
	homePath   = "/"             // Main application view
	signInPath = "/auth/sign-in" // Sign-in entry point
	signUpPath = "/auth/sign-up" // Sign-up entry point
)

// RouteGuardMiddleware redirects anonymous visitors away from the main view
// and authenticated sessions away from the auth entry pages. API and asset
// paths are excluded from evaluation entirely.
func RouteGuardMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path // Requested path
		// Skip API, static assets and the favicon
		if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/assets") || path == "/favicon.ico" {
			c.Next() // Pass through unchanged
			return
		}
		ident := ResolveIdentity(c, secret) // Resolve the caller, never aborting
		// Redirect anonymous access to the main view towards sign-in
		if ident == nil && path == homePath {
			c.Redirect(http.StatusFound, signInPath) // Redirect to sign-in
			c.Abort()
			return
		}
		// Redirect authenticated sessions away from the auth entry pages
		if ident != nil && (strings.HasPrefix(path, signInPath) || strings.HasPrefix(path, signUpPath)) {
			c.Redirect(http.StatusFound, homePath) // Redirect to the main view
			c.Abort()
			return
		}
		c.Next() // Pass through unchanged
	}
}
