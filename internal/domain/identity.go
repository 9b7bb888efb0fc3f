package domain

// Identity is the authenticated caller as supplied by the identity provider.
// The service never issues or validates these fields beyond token checks.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
