package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
	"todo_app/internal/domain"     // Identity carried in the claims
)

// JWT Claims
type Claims struct {
	UserID               uint   `json:"user_id"` // Custom claim for user ID
	Name                 string `json:"name"`    // Custom claim for display name
	Email                string `json:"email"`   // Custom claim for email
	jwt.RegisteredClaims        // Standard JWT claims
}

// Identity converts the claims into the identity value passed to core services
func (c *Claims) Identity() *domain.Identity {
	return &domain.Identity{UserID: c.UserID, Name: c.Name, Email: c.Email}
}

// GenerateJWT creates a JWT token for a given user
func GenerateJWT(user *domain.User, secret string) (string, error) {
	// Set token claims
	claims := Claims{
		UserID: user.ID,    // Custom claim for user ID
		Name:   user.Name,  // Custom claim for display name
		Email:  user.Email, // Custom claim for email
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),                     // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
