package repository

import (
	"context"

	"todo_app/internal/domain"

	"gorm.io/gorm"
)

// TodoRepository defines the interface for todo data operations. Ownership is
// always part of the predicate sent to the store, never a post-hoc filter, so
// a caller probing another user's row gets the same zero-rows result as a
// nonexistent id.
type TodoRepository interface {
	// ListByUser returns all todos owned by userID, oldest first.
	ListByUser(ctx context.Context, userID uint) ([]domain.Todo, error)
	// Create inserts a new todo; the store generates ID and timestamps.
	Create(ctx context.Context, todo *domain.Todo) error
	// UpdateOwned applies patch to the row matching both id and userID and
	// reports how many rows matched (0 or 1). updated_at is refreshed by the
	// store only when a row matches.
	UpdateOwned(ctx context.Context, id, userID uint, patch map[string]any) (int64, error)
	// DeleteOwned removes the row matching both id and userID and reports how
	// many rows matched (0 or 1).
	DeleteOwned(ctx context.Context, id, userID uint) (int64, error)
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

// ListByUser retrieves the user's todos ordered by creation time
func (r *gormTodoRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Todo, error) {
	var todos []domain.Todo
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}
	return todos, nil
}

// Create adds a new todo to the database
func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	result := r.db.WithContext(ctx).Create(todo)
	return result.Error // Return any error encountered
}

// UpdateOwned modifies a todo only when it belongs to userID
func (r *gormTodoRepository) UpdateOwned(ctx context.Context, id, userID uint, patch map[string]any) (int64, error) {
	// A single conditional UPDATE; GORM refreshes updated_at alongside the
	// patched columns when the predicate matches.
	result := r.db.WithContext(ctx).
		Model(&domain.Todo{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(patch)
	return result.RowsAffected, result.Error
}

// DeleteOwned removes a todo only when it belongs to userID
func (r *gormTodoRepository) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Todo{})
	return result.RowsAffected, result.Error
}
