package blob

import "context"

// Store persists raw bytes under a path and returns a publicly retrievable
// URL. Implementations append an anti-collision suffix to the path, so two
// puts of the same path never overwrite each other; there is no in-place
// update and no delete in this contract.
type Store interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
