package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ServiceImpl implements the AuthService interface
type ServiceImpl struct {
	credentials CredentialStore
	sessions    SessionStore
	bcryptCost  int
	sessionTTL  time.Duration
}

// NewService creates a new auth service instance
func NewService(credentials CredentialStore, sessions SessionStore, bcryptCost int, sessionTTL time.Duration) *ServiceImpl {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if sessionTTL <= 0 {
		sessionTTL = 168 * time.Hour
	}
	return &ServiceImpl{
		credentials: credentials,
		sessions:    sessions,
		bcryptCost:  bcryptCost,
		sessionTTL:  sessionTTL,
	}
}

// SignUp registers a new account and returns a fresh session
func (s *ServiceImpl) SignUp(ctx context.Context, req *SignUpRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	cred := &Credential{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.credentials.CreateCredential(ctx, cred); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, cred.UserID)
}

// SignIn authenticates an existing account and returns a fresh session
func (s *ServiceImpl) SignIn(ctx context.Context, req *SignInRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, NewValidationError("email and password are required")
	}

	cred, err := s.credentials.GetCredentialByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewInvalidCredentialsError()
	}

	return s.issueSession(ctx, cred.UserID)
}

// SignOut invalidates a session token
func (s *ServiceImpl) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return NewInvalidTokenError()
	}
	return s.sessions.DeleteSession(ctx, token)
}

// Actor resolves a bearer token to the current actor's user ID
func (s *ServiceImpl) Actor(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", NewInvalidTokenError()
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return "", err
	}

	if time.Now().After(session.ExpiresAt) {
		// Best effort cleanup; the token is rejected either way.
		_ = s.sessions.DeleteSession(ctx, token)
		return "", NewInvalidTokenError()
	}

	return session.UserID, nil
}

func (s *ServiceImpl) issueSession(ctx context.Context, userID string) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
