package domain

// Identity is the authenticated caller reconstructed from a verified session
// token. It lives for a single request and is never persisted.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
