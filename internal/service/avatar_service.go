package service

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"todo_app/internal/blob"
	"todo_app/internal/domain"
	"todo_app/internal/repository"
)

// MaxAvatarSize is the upload size limit: 5 MiB
const MaxAvatarSize = 5 * 1024 * 1024

// AvatarUpload carries one uploaded file through validation
type AvatarUpload struct {
	Filename    string // Client-declared filename, used only for the extension
	ContentType string // Client-declared media type
	Data        []byte // Raw file content
}

// AvatarService replaces or clears a user's avatar image. Upload validates
// the file, stores it in the blob store and records the resulting URL;
// Remove clears the recorded URL. Neither operation deletes blobs, so a
// replaced avatar leaves its previous blob unreferenced in storage.
type AvatarService interface {
	// Upload validates the file, writes it to the blob store and records the
	// new URL on the user. Returns the public URL of the stored avatar.
	Upload(ctx context.Context, ident *domain.Identity, upload *AvatarUpload) (string, error)
	// Remove clears the user's avatar URL. Idempotent: removing an absent
	// avatar succeeds the same way.
	Remove(ctx context.Context, ident *domain.Identity) error
}

// avatarService implements AvatarService over a UserRepository and blob store
type avatarService struct {
	users repository.UserRepository
	blobs blob.Store
	now   func() time.Time // Injected clock, fixed in tests
}

// NewAvatarService creates a new avatar service
func NewAvatarService(users repository.UserRepository, blobs blob.Store) AvatarService {
	return &avatarService{users: users, blobs: blobs, now: time.Now}
}

// Upload validates and stores a new avatar for the caller
func (s *avatarService) Upload(ctx context.Context, ident *domain.Identity, upload *AvatarUpload) (string, error) {
	// Validation order is fixed: authentication, presence, type, size.
	// Each failure is distinct and nothing below it runs.
	if ident == nil {
		return "", ErrUnauthorized
	}
	if upload == nil || len(upload.Data) == 0 {
		return "", ErrMissingFile
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", ErrNotAnImage
	}
	if len(upload.Data) > MaxAvatarSize {
		return "", ErrFileTooLarge
	}
	// Storage path is deterministic in the caller and upload time; the blob
	// store adds its own anti-collision suffix on top
	ext := strings.TrimPrefix(filepath.Ext(upload.Filename), ".")
	if ext == "" {
		ext = "jpg" // Fallback when the filename carries no extension
	}
	path := "avatars/" + strconv.Itoa(int(ident.UserID)) + "-" + strconv.FormatInt(s.now().UnixMilli(), 10) + "." + ext
	url, err := s.blobs.Put(ctx, path, upload.Data, upload.ContentType)
	if err != nil {
		return "", err // Blob write failed; the user record is untouched
	}
	// Record the new URL; if this fails the already-written blob stays
	// orphaned in storage (accepted, no compensating delete)
	if _, err := s.users.SetAvatarURL(ctx, ident.UserID, &url); err != nil {
		return "", err
	}
	return url, nil
}

// Remove clears the caller's avatar URL
func (s *avatarService) Remove(ctx context.Context, ident *domain.Identity) error {
	if ident == nil {
		return ErrUnauthorized
	}
	// Unconditional clear regardless of prior value; updated_at refreshes
	_, err := s.users.SetAvatarURL(ctx, ident.UserID, nil)
	return err
}
