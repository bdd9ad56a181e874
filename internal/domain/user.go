package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`         // Primary key
	Name      string    `gorm:"not null" json:"name"`         // Display name
	Email     string    `gorm:"unique;not null" json:"email"` // Unique email, used for login
	Password  string    `gorm:"not null" json:"-"`            // Hashed password, never serialized
	AvatarURL *string   `json:"avatar_url"`                   // Blob URL of the custom avatar; nil means initials fallback
	CreatedAt time.Time `json:"created_at"`                   // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                   // Refreshed on every mutation
}
