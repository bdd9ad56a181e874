package api

import (
	"errors"                       // Sentinel error checks
	"io"                           // Reading the multipart file
	"net/http"                     // HTTP status codes
	"todo_app/internal/middleware" // Resolved identity accessor
	"todo_app/internal/service"    // Core avatar service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// UploadAvatarHandler accepts a multipart image and stores it as the
// caller's avatar, responding with the new public URL
func UploadAvatarHandler(avatars service.AvatarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c) // Resolved caller
		var upload *service.AvatarUpload       // nil when no file was sent
		// Read the multipart field "file" if present
		if fileHeader, err := c.FormFile("file"); err == nil {
			f, err := fileHeader.Open() // Open the uploaded file
			if err != nil {
				// If the part cannot be opened, return internal server error
				logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to open uploaded avatar")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
				return
			}
			defer f.Close()
			// Read one byte past the limit so the service can reject oversize
			// uploads without the handler buffering arbitrarily large bodies
			data, err := io.ReadAll(io.LimitReader(f, service.MaxAvatarSize+1))
			if err != nil {
				// If reading fails, return internal server error
				logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to read uploaded avatar")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
				return
			}
			// Declared content type comes from the part header
			upload = &service.AvatarUpload{
				Filename:    fileHeader.Filename,                   // Used only for the extension
				ContentType: fileHeader.Header.Get("Content-Type"), // Declared media type
				Data:        data,                                  // Raw file content
			}
		}
		// Validate and store the avatar
		url, err := avatars.Upload(c.Request.Context(), ident, upload)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnauthorized):
				// Anonymous callers get unauthorized
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			case errors.Is(err, service.ErrMissingFile), errors.Is(err, service.ErrNotAnImage), errors.Is(err, service.ErrFileTooLarge):
				// Validation failures surface their own message
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				// Log the error with context, hide the detail from the caller
				logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Avatar upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
			}
			return
		}
		// Return the new avatar URL
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// RemoveAvatarHandler clears the caller's avatar
func RemoveAvatarHandler(avatars service.AvatarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c) // Resolved caller
		// Clear the avatar; removing twice is not an error
		if err := avatars.Remove(c.Request.Context(), ident); err != nil {
			// Anonymous callers get unauthorized
			if errors.Is(err, service.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Avatar removal failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove avatar"})
			return
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
