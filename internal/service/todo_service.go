package service

import (
	"context"
	"strconv"
	"time"

	"todo_app/internal/cache"
	"todo_app/internal/domain"
	"todo_app/internal/repository"

	"github.com/sirupsen/logrus"
)

// listCacheTTL bounds how stale a cached list view may get if an
// invalidation is lost; mutations delete the key eagerly.
const listCacheTTL = 60 * time.Second

// CreateTodoRequest holds the data needed to create a new todo
type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required"` // Required at creation
	Description string `json:"description"`              // Optional, defaults to empty
}

// UpdateTodoRequest holds the data for updating an existing todo.
// Pointer fields distinguish "omitted" from "set to the zero value"
// (e.g. flipping Completed back to false).
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoService mediates all reads and writes of todos. Every operation takes
// the resolved caller identity explicitly; a nil identity fails with
// ErrUnauthorized before any store access, and every row access carries the
// caller's user id in the store predicate.
type TodoService interface {
	// List returns the caller's todos ordered by creation time, oldest first.
	List(ctx context.Context, ident *domain.Identity) ([]domain.Todo, error)
	// Create inserts a new todo owned by the caller and invalidates the
	// caller's cached list view.
	Create(ctx context.Context, ident *domain.Identity, req CreateTodoRequest) (*domain.Todo, error)
	// Update applies a partial patch to the caller's todo. A nonexistent id
	// and an id owned by someone else are both silent no-ops.
	Update(ctx context.Context, ident *domain.Identity, id uint, req UpdateTodoRequest) error
	// Delete removes the caller's todo; same no-op semantics as Update.
	Delete(ctx context.Context, ident *domain.Identity, id uint) error
}

// todoService implements TodoService over a TodoRepository and a list cache
type todoService struct {
	repo  repository.TodoRepository
	cache cache.Cache
}

// NewTodoService creates a new todo service
func NewTodoService(repo repository.TodoRepository, c cache.Cache) TodoService {
	return &todoService{repo: repo, cache: c}
}

// listCacheKey is the cached list view key for one user
func listCacheKey(userID uint) string {
	return "todos:user:" + strconv.Itoa(int(userID))
}

// List returns the caller's todos, serving from cache when possible
func (s *todoService) List(ctx context.Context, ident *domain.Identity) ([]domain.Todo, error) {
	if ident == nil {
		return nil, ErrUnauthorized // Anonymous callers never reach the store
	}
	key := listCacheKey(ident.UserID)
	var cached []domain.Todo
	// A cache read error is treated as a miss; the DB stays authoritative
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}
	todos, err := s.repo.ListByUser(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	// Cache the fresh view; failure to cache is not a request failure
	if err := s.cache.Set(ctx, key, todos, listCacheTTL); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": ident.UserID, "error": err.Error()}).Warn("Failed to cache todo list")
	}
	return todos, nil
}

// Create inserts a new todo owned by the caller
func (s *todoService) Create(ctx context.Context, ident *domain.Identity, req CreateTodoRequest) (*domain.Todo, error) {
	if ident == nil {
		return nil, ErrUnauthorized
	}
	todo := &domain.Todo{
		Title:       req.Title,       // Passed through verbatim; emptiness is the transport binding's concern
		Description: req.Description, // Defaults to empty string
		Completed:   false,           // Always starts incomplete
		UserID:      ident.UserID,    // Owner set once, immutable afterwards
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	s.invalidateList(ctx, ident.UserID)
	return todo, nil
}

// Update applies a partial patch to the caller's todo
func (s *todoService) Update(ctx context.Context, ident *domain.Identity, id uint, req UpdateTodoRequest) error {
	if ident == nil {
		return ErrUnauthorized
	}
	// Build the patch from the fields actually present in the request
	patch := map[string]any{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Completed != nil {
		patch["completed"] = *req.Completed
	}
	if len(patch) == 0 {
		return nil // Nothing to change; do not touch updated_at
	}
	// Conditional on both id and owner; zero rows matched means either
	// "not found" or "not owned" and the two are never distinguished
	if _, err := s.repo.UpdateOwned(ctx, id, ident.UserID, patch); err != nil {
		return err
	}
	s.invalidateList(ctx, ident.UserID)
	return nil
}

// Delete removes the caller's todo
func (s *todoService) Delete(ctx context.Context, ident *domain.Identity, id uint) error {
	if ident == nil {
		return ErrUnauthorized
	}
	if _, err := s.repo.DeleteOwned(ctx, id, ident.UserID); err != nil {
		return err
	}
	s.invalidateList(ctx, ident.UserID)
	return nil
}

// invalidateList drops the user's cached list view after a mutation
func (s *todoService) invalidateList(ctx context.Context, userID uint) {
	if err := s.cache.Delete(ctx, listCacheKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Failed to invalidate todo list cache")
	}
}
