package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// CredentialSchema represents the credentials table schema
type CredentialSchema struct {
	bun.BaseModel `bun:"table:credentials,alias:c"`

	UserID       string    `bun:"user_id,pk,type:uuid" json:"user_id"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// SessionSchema represents the sessions table schema
type SessionSchema struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	Token     string    `bun:"token,pk" json:"token"`
	UserID    string    `bun:"user_id,notnull,type:uuid" json:"user_id"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	ExpiresAt time.Time `bun:"expires_at,notnull" json:"expires_at"`
}

// SessionIndexes are created after the table exists
var SessionIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions (user_id)",
	"CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions (expires_at)",
}

// PostgresStore implements CredentialStore and SessionStore with PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL auth store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// CreateCredential inserts a new credential row
func (s *PostgresStore) CreateCredential(ctx context.Context, cred *Credential) error {
	schema := &CredentialSchema{
		UserID:       cred.UserID,
		Email:        cred.Email,
		PasswordHash: cred.PasswordHash,
		CreatedAt:    cred.CreatedAt,
		UpdatedAt:    cred.UpdatedAt,
	}

	_, err := s.db.NewInsert().
		Model(schema).
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return NewEmailTakenError(cred.Email)
		}
		return NewStorageError("insert credentials", err)
	}

	return nil
}

// GetCredentialByEmail retrieves a credential row by email
func (s *PostgresStore) GetCredentialByEmail(ctx context.Context, email string) (*Credential, error) {
	var schema CredentialSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewInvalidCredentialsError()
		}
		return nil, NewStorageError("select credentials", err)
	}

	return &Credential{
		UserID:       schema.UserID,
		Email:        schema.Email,
		PasswordHash: schema.PasswordHash,
		CreatedAt:    schema.CreatedAt,
		UpdatedAt:    schema.UpdatedAt,
	}, nil
}

// CreateSession inserts a new session token
func (s *PostgresStore) CreateSession(ctx context.Context, session *Session) error {
	schema := &SessionSchema{
		Token:     session.Token,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}

	_, err := s.db.NewInsert().
		Model(schema).
		Exec(ctx)
	if err != nil {
		return NewStorageError("insert sessions", err)
	}

	return nil
}

// GetSession retrieves a session by token
func (s *PostgresStore) GetSession(ctx context.Context, token string) (*Session, error) {
	var schema SessionSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("token = ?", token).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewInvalidTokenError()
		}
		return nil, NewStorageError("select sessions", err)
	}

	return &Session{
		Token:     schema.Token,
		UserID:    schema.UserID,
		CreatedAt: schema.CreatedAt,
		ExpiresAt: schema.ExpiresAt,
	}, nil
}

// DeleteSession removes a session token. Deleting an unknown token is not an
// error so sign-out stays idempotent.
func (s *PostgresStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.NewDelete().
		Model((*SessionSchema)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	if err != nil {
		return NewStorageError("delete sessions", err)
	}
	return nil
}
