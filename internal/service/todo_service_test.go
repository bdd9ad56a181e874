package service

import (
	"context"
	"errors"
	"testing"

	"todo_app/internal/domain"
)

func identA() *domain.Identity {
	return &domain.Identity{UserID: 1, Name: "Alice", Email: "alice@example.com"}
}

func identB() *domain.Identity {
	return &domain.Identity{UserID: 2, Name: "Bob", Email: "bob@example.com"}
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

// Requirement: every operation rejects anonymous callers before any store access.
func TestTodoService_AnonymousUnauthorized(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, newFakeCache())
	ctx := context.Background()

	if _, err := svc.List(ctx, nil); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("List(nil) error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Create(ctx, nil, CreateTodoRequest{Title: "x"}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Create(nil) error = %v, want ErrUnauthorized", err)
	}
	if err := svc.Update(ctx, nil, 1, UpdateTodoRequest{Completed: boolptr(true)}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Update(nil) error = %v, want ErrUnauthorized", err)
	}
	if err := svc.Delete(ctx, nil, 1); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Delete(nil) error = %v, want ErrUnauthorized", err)
	}
	if len(repo.todos) != 0 {
		t.Errorf("anonymous calls reached the store: %d rows", len(repo.todos))
	}
}

// Requirement: Create always sets completed=false and the caller as owner.
func TestTodoService_CreateDefaults(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, newFakeCache())

	todo, err := svc.Create(context.Background(), identA(), CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if todo.Completed {
		t.Error("Create() completed = true, want false")
	}
	if todo.UserID != identA().UserID {
		t.Errorf("Create() userID = %d, want %d", todo.UserID, identA().UserID)
	}
	if todo.Description != "" {
		t.Errorf("Create() description = %q, want empty", todo.Description)
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("Create() timestamps not set")
	}
}

// Requirement: List returns only the caller's rows, oldest first.
func TestTodoService_ListScopedToOwner(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, newFakeCache())
	ctx := context.Background()

	if _, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "first"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, identB(), CreateTodoRequest{Title: "other user"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "second"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := svc.List(ctx, identA())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d todos, want 2", len(list))
	}
	if list[0].Title != "first" || list[1].Title != "second" {
		t.Errorf("List() order = [%q, %q], want [first, second]", list[0].Title, list[1].Title)
	}
	for _, todo := range list {
		if todo.UserID != identA().UserID {
			t.Errorf("List() leaked row owned by user %d", todo.UserID)
		}
	}
}

// Requirement: updating or deleting a nonexistent id or another user's id is
// a silent no-op, indistinguishable from "not found".
func TestTodoService_ForeignRowsAreNoOps(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, newFakeCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// User B patches A's row by id: no error, no change
	if err := svc.Update(ctx, identB(), created.ID, UpdateTodoRequest{Completed: boolptr(true)}); err != nil {
		t.Fatalf("Update() as non-owner error = %v, want nil", err)
	}
	if row := repo.find(created.ID); row == nil || row.Completed {
		t.Error("non-owner update mutated the row")
	}

	// User B deletes A's row by id: no error, row persists
	if err := svc.Delete(ctx, identB(), created.ID); err != nil {
		t.Fatalf("Delete() as non-owner error = %v, want nil", err)
	}
	if repo.find(created.ID) == nil {
		t.Error("non-owner delete removed the row")
	}

	// Nonexistent ids behave identically
	if err := svc.Update(ctx, identA(), 9999, UpdateTodoRequest{Title: strptr("x")}); err != nil {
		t.Errorf("Update() of missing id error = %v, want nil", err)
	}
	if err := svc.Delete(ctx, identA(), 9999); err != nil {
		t.Errorf("Delete() of missing id error = %v, want nil", err)
	}
}

// Requirement: a matched update applies the patch and advances updated_at.
func TestTodoService_UpdateOwnRow(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, newFakeCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Update(ctx, identA(), created.ID, UpdateTodoRequest{Completed: boolptr(true)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	row := repo.find(created.ID)
	if row == nil {
		t.Fatal("row disappeared")
	}
	if !row.Completed {
		t.Error("Update() did not apply completed=true")
	}
	if row.Title != "Buy milk" {
		t.Errorf("Update() changed an omitted field: title = %q", row.Title)
	}
	if !row.UpdatedAt.After(row.CreatedAt) {
		t.Error("Update() did not advance updated_at")
	}
}

// Requirement: an empty patch touches nothing, not even updated_at.
func TestTodoService_EmptyPatchIsNoOp(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, newFakeCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	before := repo.find(created.ID).UpdatedAt

	if err := svc.Update(ctx, identA(), created.ID, UpdateTodoRequest{}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if after := repo.find(created.ID).UpdatedAt; !after.Equal(before) {
		t.Error("empty patch refreshed updated_at")
	}
}

// Requirement: mutations invalidate the caller's cached list view, so the
// next List reflects the new state.
func TestTodoService_CacheInvalidation(t *testing.T) {
	repo := newFakeTodoRepo()
	c := newFakeCache()
	svc := NewTodoService(repo, c)
	ctx := context.Background()
	key := listCacheKey(identA().UserID)

	// Prime the cache via List
	if _, err := svc.List(ctx, identA()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !c.has(key) {
		t.Fatal("List() did not populate the cache")
	}

	// Create invalidates
	created, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.has(key) {
		t.Error("Create() left a stale cached view")
	}

	// The fresh List sees the new row and re-primes the cache
	list, err := svc.List(ctx, identA())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("List() after create = %d rows, want the created row", len(list))
	}
	if !c.has(key) {
		t.Fatal("List() did not re-populate the cache")
	}

	// Update and Delete invalidate too
	if err := svc.Update(ctx, identA(), created.ID, UpdateTodoRequest{Completed: boolptr(true)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if c.has(key) {
		t.Error("Update() left a stale cached view")
	}
	if _, err := svc.List(ctx, identA()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if err := svc.Delete(ctx, identA(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if c.has(key) {
		t.Error("Delete() left a stale cached view")
	}
}

// Requirement: a cache read error falls back to the store instead of failing
// the request.
func TestTodoService_CacheErrorFallsBackToStore(t *testing.T) {
	repo := newFakeTodoRepo()
	c := newFakeCache()
	c.getErr = errors.New("redis down")
	svc := NewTodoService(repo, c)
	ctx := context.Background()

	if _, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "Buy milk"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	list, err := svc.List(ctx, identA())
	if err != nil {
		t.Fatalf("List() error = %v, want store fallback", err)
	}
	if len(list) != 1 {
		t.Errorf("List() = %d rows, want 1", len(list))
	}
}

// Requirement: the end-to-end lifecycle — create, complete, foreign delete
// attempt, own delete — matches the ownership rules throughout.
func TestTodoService_Lifecycle(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo, newFakeCache())
	ctx := context.Background()

	// Anonymous list fails
	if _, err := svc.List(ctx, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous List() error = %v, want ErrUnauthorized", err)
	}

	// A creates a todo
	created, err := svc.Create(ctx, identA(), CreateTodoRequest{Title: "Buy milk", Description: ""})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.UserID != identA().UserID || created.Completed {
		t.Fatalf("Create() row = {userID:%d completed:%v}, want {userID:%d completed:false}", created.UserID, created.Completed, identA().UserID)
	}

	// A completes it
	if err := svc.Update(ctx, identA(), created.ID, UpdateTodoRequest{Completed: boolptr(true)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if row := repo.find(created.ID); !row.Completed {
		t.Fatal("Update() did not complete the todo")
	}

	// B cannot delete it
	if err := svc.Delete(ctx, identB(), created.ID); err != nil {
		t.Fatalf("Delete() as B error = %v", err)
	}
	if repo.find(created.ID) == nil {
		t.Fatal("B's delete removed A's row")
	}

	// A deletes it; A's list is empty again
	if err := svc.Delete(ctx, identA(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	list, err := svc.List(ctx, identA())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("List() after delete = %d rows, want 0", len(list))
	}
}
