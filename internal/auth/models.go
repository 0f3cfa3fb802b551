package auth

import (
	"time"
)

// Session is an issued bearer token bound to a user
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Credential is a user's stored sign-in identity. The password is only ever
// held as a bcrypt hash.
type Credential struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignUpRequest is the payload to register a new account
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// SignInRequest is the payload to authenticate an existing account
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
