package account

import "github.com/google/uuid"

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is the validated login payload.
type LoginInput struct {
	Email    string
	Password string
}

// UserDTO is the client-facing identity shape.
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Session carries a freshly established session: the signed cookie token and
// the session ID recorded in the liveness store.
type Session struct {
	Token     string
	SessionID string
	UserID    uuid.UUID
}
