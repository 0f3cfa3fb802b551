package auth

import (
	"context"
)

// CredentialStore defines the interface for credential storage operations
type CredentialStore interface {
	CreateCredential(ctx context.Context, cred *Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*Credential, error)
}

// SessionStore defines the interface for session token storage operations
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*Session, error)
	SignIn(ctx context.Context, req *SignInRequest) (*Session, error)
	SignOut(ctx context.Context, token string) error
	// Actor resolves a bearer token to the current actor's user ID.
	Actor(ctx context.Context, token string) (string, error)
}
