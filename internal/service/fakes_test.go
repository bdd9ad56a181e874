package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"todo_app/internal/domain"
)

var errNotFound = errors.New("record not found")

// fakeTodoRepo is a test-only fake implementing repository.TodoRepository.
// It keeps rows in a slice and exposes error fields for behavior injection.
type fakeTodoRepo struct {
	mu        sync.Mutex
	todos     []domain.Todo
	nextID    uint
	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{nextID: 1}
}

func (f *fakeTodoRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	// Rows are appended in insert order, which matches created_at ascending
	var out []domain.Todo
	for _, t := range f.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) Create(ctx context.Context, todo *domain.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	todo.ID = f.nextID
	f.nextID++
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	f.todos = append(f.todos, *todo)
	return nil
}

func (f *fakeTodoRepo) UpdateOwned(ctx context.Context, id, userID uint, patch map[string]any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	for i := range f.todos {
		if f.todos[i].ID == id && f.todos[i].UserID == userID {
			if v, ok := patch["title"]; ok {
				f.todos[i].Title = v.(string)
			}
			if v, ok := patch["description"]; ok {
				f.todos[i].Description = v.(string)
			}
			if v, ok := patch["completed"]; ok {
				f.todos[i].Completed = v.(bool)
			}
			f.todos[i].UpdatedAt = time.Now().Add(time.Millisecond) // Strictly after CreatedAt
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTodoRepo) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	for i := range f.todos {
		if f.todos[i].ID == id && f.todos[i].UserID == userID {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTodoRepo) find(id uint) *domain.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.todos {
		if f.todos[i].ID == id {
			return &f.todos[i]
		}
	}
	return nil
}

// fakeUserRepo is a test-only fake implementing repository.UserRepository
type fakeUserRepo struct {
	mu           sync.Mutex
	users        map[uint]*domain.User
	setAvatarErr error
	setCalls     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uint(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) SetAvatarURL(ctx context.Context, userID uint, url *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setAvatarErr != nil {
		return 0, f.setAvatarErr
	}
	u, ok := f.users[userID]
	if !ok {
		return 0, nil
	}
	u.AvatarURL = url
	u.UpdatedAt = time.Now()
	return 1, nil
}

// fakeCache is a test-only fake implementing cache.Cache with JSON values,
// matching the Redis implementation's marshaling behavior
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
	delErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return false, f.getErr
	}
	b, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = b
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

// fakeBlobStore is a test-only fake implementing blob.Store. It records puts
// and mimics the anti-collision suffix of the real store.
type fakeBlobStore struct {
	mu     sync.Mutex
	puts   []string
	putErr error
}

func (f *fakeBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts = append(f.puts, path)
	ext := ""
	if i := strings.LastIndex(path, "."); i >= 0 {
		ext = path[i:]
		path = path[:i]
	}
	return "https://blobs.example.test/" + path + "-x7f3" + ext, nil
}

func (f *fakeBlobStore) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}
