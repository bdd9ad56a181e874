package api

import (
	"net/http"                     // HTTP status codes
	"todo_app/internal/middleware" // Resolved identity accessor
	"todo_app/internal/repository" // User store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ProfileHandler returns the authenticated user's profile, read fresh from
// the store so a just-uploaded avatar URL is reflected immediately
func ProfileHandler(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c) // Resolved caller
		// Check that the request carries a valid session
		if ident == nil {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Fetch the user record
		user, err := users.FindByID(c.Request.Context(), ident.UserID)
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{"user_id": ident.UserID, "error": err.Error()}).Error("Failed to fetch profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		// Return the profile; Password is excluded by its json tag
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
