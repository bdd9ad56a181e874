package domain

import "time"

// Todo Model
type Todo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                    // Primary key, store-generated
	Title       string    `gorm:"not null" json:"title"`                   // Required at creation
	Description string    `json:"description"`                             // May be empty
	Completed   bool      `gorm:"not null;default:false" json:"completed"` // Defaults to false
	UserID      uint      `gorm:"index;not null" json:"user_id"`           // Owning user, immutable after creation
	CreatedAt   time.Time `json:"created_at"`                              // Set at insert, immutable
	UpdatedAt   time.Time `json:"updated_at"`                              // Refreshed on every mutation
}
