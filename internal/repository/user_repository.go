package repository

import (
	"context"

	"todo_app/internal/domain"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user; fails on duplicate email.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail retrieves a user by email for login.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID retrieves a user by primary key.
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	// SetAvatarURL sets or clears (nil) the user's avatar URL, refreshing
	// updated_at, and reports how many rows matched.
	SetAvatarURL(ctx context.Context, userID uint, url *string) (int64, error)
}

// gormUserRepository implements UserRepository using GORM
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create adds a new user to the database
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Create(user)
	return result.Error
}

// FindByEmail retrieves a user by email
func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// FindByID retrieves a user by primary key
func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// SetAvatarURL sets or clears the avatar URL for a user
func (r *gormUserRepository) SetAvatarURL(ctx context.Context, userID uint, url *string) (int64, error) {
	// Updates with a map so a nil url becomes SQL NULL; updated_at is
	// refreshed by GORM when the row matches.
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"avatar_url": url})
	return result.RowsAffected, result.Error
}
