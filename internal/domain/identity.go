package domain

// Identity is the resolved caller of a request. A nil *Identity means the
// request is anonymous; core services check this before touching any store.
type Identity struct {
	UserID uint   // ID of the authenticated user
	Name   string // Display name from the session claims
	Email  string // Email from the session claims
}
