package blob

import (
	"context"       // Context per the Store contract
	"crypto/rand"   // Random bytes for the anti-collision suffix
	"encoding/hex"  // Hex encoding of the suffix
	"os"            // File writes
	"path/filepath" // Path manipulation
	"strings"       // URL assembly
)

// DiskStore implements Store on the local filesystem. Files land under
// baseDir and are served by the router's static route under baseURL.
type DiskStore struct {
	baseDir string // Root directory for stored files
	baseURL string // Public URL prefix the files are served from
}

// NewDiskStore creates a disk-backed blob store rooted at baseDir
func NewDiskStore(baseDir, baseURL string) *DiskStore {
	return &DiskStore{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Put writes data under path with a random suffix and returns its public URL
func (s *DiskStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	suffix, err := randomSuffix() // Generate the anti-collision suffix
	if err != nil {
		return "", err // Return error if randomness fails
	}
	ext := filepath.Ext(path)                                  // Keep the extension at the end
	name := strings.TrimSuffix(path, ext) + "-" + suffix + ext // Insert suffix before the extension
	full := filepath.Join(s.baseDir, filepath.FromSlash(name)) // Absolute path on disk
	// Ensure the parent directory exists
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err // Return error if directory creation fails
	}
	// Write the file with public-read permissions
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err // Return error if the write fails
	}
	return s.baseURL + "/" + name, nil // Return the public URL
}

// randomSuffix returns a short random hex string
func randomSuffix() (string, error) {
	b := make([]byte, 8) // 64 bits of entropy
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
