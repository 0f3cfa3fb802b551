package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeCredentialStore struct {
	byEmail map[string]*Credential
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{byEmail: make(map[string]*Credential)}
}

func (f *fakeCredentialStore) CreateCredential(_ context.Context, cred *Credential) error {
	if _, ok := f.byEmail[cred.Email]; ok {
		return NewEmailTakenError(cred.Email)
	}
	copied := *cred
	f.byEmail[cred.Email] = &copied
	return nil
}

func (f *fakeCredentialStore) GetCredentialByEmail(_ context.Context, email string) (*Credential, error) {
	cred, ok := f.byEmail[email]
	if !ok {
		return nil, NewInvalidCredentialsError()
	}
	copied := *cred
	return &copied, nil
}

type fakeSessionStore struct {
	byToken map[string]*Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byToken: make(map[string]*Session)}
}

func (f *fakeSessionStore) CreateSession(_ context.Context, session *Session) error {
	copied := *session
	f.byToken[session.Token] = &copied
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, token string) (*Session, error) {
	session, ok := f.byToken[token]
	if !ok {
		return nil, NewInvalidTokenError()
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

func newTestService() (*ServiceImpl, *fakeCredentialStore, *fakeSessionStore) {
	credentials := newFakeCredentialStore()
	sessions := newFakeSessionStore()
	// MinCost keeps the bcrypt work factor cheap under test.
	return NewService(credentials, sessions, bcrypt.MinCost, time.Hour), credentials, sessions
}

func TestSignUp(t *testing.T) {
	service, credentials, sessions := newTestService()
	ctx := context.Background()

	session, err := service.SignUp(ctx, &SignUpRequest{
		Email:    "  Alice@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Contains(t, sessions.byToken, session.Token)

	// Email is normalized before storage.
	cred, ok := credentials.byEmail["alice@example.com"]
	require.True(t, ok)
	assert.Equal(t, session.UserID, cred.UserID)
	assert.NotEqual(t, "correct horse", cred.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *SignUpRequest
	}{
		{"missing email", &SignUpRequest{Password: "correct horse"}},
		{"email without at sign", &SignUpRequest{Email: "alice.example.com", Password: "correct horse"}},
		{"short password", &SignUpRequest{Email: "alice@example.com", Password: "hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SignUp(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, ErrorTypeValidationFailed, ErrorType(err))
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.SignUp(ctx, &SignUpRequest{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = service.SignUp(ctx, &SignUpRequest{Email: "ALICE@example.com", Password: "another pass"})
	require.Error(t, err)
	assert.Equal(t, ErrorTypeEmailTaken, ErrorType(err))
}

func TestSignIn(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	registered, err := service.SignUp(ctx, &SignUpRequest{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	session, err := service.SignIn(ctx, &SignInRequest{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	assert.Equal(t, registered.UserID, session.UserID)
	assert.NotEqual(t, registered.Token, session.Token, "each sign-in issues a fresh token")
}

func TestSignInWrongPassword(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.SignUp(ctx, &SignUpRequest{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = service.SignIn(ctx, &SignInRequest{Email: "alice@example.com", Password: "wrong horse"})
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidCredentials, ErrorType(err))
}

func TestSignInUnknownEmail(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.SignIn(context.Background(), &SignInRequest{Email: "nobody@example.com", Password: "whatever1"})
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidCredentials, ErrorType(err))
}

func TestActor(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	session, err := service.SignUp(ctx, &SignUpRequest{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	actorID, err := service.Actor(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, actorID)

	_, err = service.Actor(ctx, "")
	assert.Equal(t, ErrorTypeInvalidToken, ErrorType(err))

	_, err = service.Actor(ctx, "deadbeef")
	assert.Equal(t, ErrorTypeInvalidToken, ErrorType(err))
}

func TestActorExpiredSession(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()

	session, err := service.SignUp(ctx, &SignUpRequest{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	sessions.byToken[session.Token].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = service.Actor(ctx, session.Token)
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidToken, ErrorType(err))

	// The expired row is removed on first use.
	assert.NotContains(t, sessions.byToken, session.Token)
}

func TestSignOut(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()

	session, err := service.SignUp(ctx, &SignUpRequest{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, service.SignOut(ctx, session.Token))
	assert.NotContains(t, sessions.byToken, session.Token)

	_, err = service.Actor(ctx, session.Token)
	assert.Equal(t, ErrorTypeInvalidToken, ErrorType(err))

	assert.Error(t, service.SignOut(ctx, ""))
}
