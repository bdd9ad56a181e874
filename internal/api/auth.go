package api

import (
	"net/http"                     // HTTP status codes
	"regexp"                       // Regular expressions
	"strings"                      // String manipulation
	"todo_app/internal/domain"     // Importing domain models
	"todo_app/internal/middleware" // Session cookie name
	"todo_app/internal/repository" // User store
	"todo_app/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Request and Response structs
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// sessionMaxAge matches the 24 hour token expiry, in seconds
const sessionMaxAge = 24 * 60 * 60

// isValidEmail checks that the email has a plausible user@host shape
func isValidEmail(email string) bool {
	matched, _ := regexp.MatchString(`^[^@\s]+@[^@\s]+\.[^@\s]+$`, email) // Regex for a minimal email shape
	return matched                                                        // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 72 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72 // bcrypt input is capped at 72 bytes
}

// setSessionCookie stores the token in the session cookie for page loads
func setSessionCookie(c *gin.Context, token string, maxAge int) {
	// HttpOnly cookie scoped to the whole site; Secure is left to the proxy
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}

// RegisterHandler creates a new user account
func RegisterHandler(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate email and password
		if !isValidEmail(req.Email) {
			// If email is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create user with lowercase email to ensure uniqueness
		user := domain.User{Name: req.Name, Email: strings.ToLower(req.Email), Password: string(hash)}
		// Attempt to create the user in the database
		if err := users.Create(c.Request.Context(), &user); err != nil {
			// If creation fails (e.g., duplicate email), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user, returns a JWT token and sets the
// session cookie so the page route guard sees the session
func LoginHandler(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Fetch user from database
		user, err := users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
		if err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Failed to generate token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setSessionCookie(c, token, sessionMaxAge) // Set the session cookie
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler clears the session cookie
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		setSessionCookie(c, "", -1) // Expire the cookie immediately
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
