package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UUID              string     `bun:"uuid,pk,type:uuid" json:"uuid"`
	Email             string     `bun:"email,notnull,unique" json:"email"`
	Name              *string    `bun:"name" json:"name,omitempty"`
	Location          *string    `bun:"location" json:"location,omitempty"`
	ProfilePhotoURL   *string    `bun:"profile_photo_url" json:"profile_photo_url,omitempty"`
	Availability      []string   `bun:"availability,array" json:"availability"`
	IsPublic          bool       `bun:"is_public,notnull,default:true" json:"is_public"`
	Rating            float64    `bun:"rating,notnull,default:0" json:"rating"`
	SessionsCompleted int        `bun:"sessions_completed,notnull,default:0" json:"sessions_completed"`
	ResponseTimeHours float64    `bun:"response_time_hours,notnull,default:24" json:"response_time_hours"`
	Karma             int        `bun:"karma,notnull,default:0" json:"karma"`
	Level             int        `bun:"level,notnull,default:1" json:"level"`
	CreatedAt         time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt         *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// UserIndexes are created after the table exists
var UserIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_users_is_public ON users (is_public) WHERE deleted_at IS NULL",
}

// PostgresStore implements the UserStore interface
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new user store instance
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// CreateUser creates a new user row
func (s *PostgresStore) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user_id cannot be empty")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	now := time.Now()
	schema := &UserSchema{
		UUID:              req.UserID,
		Email:             req.Email,
		Availability:      []string{},
		IsPublic:          true,
		ResponseTimeHours: 24,
		Level:             1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.Name != "" {
		schema.Name = &req.Name
	}

	_, err := s.db.NewInsert().
		Model(schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, fmt.Errorf("user already exists with email: %s", req.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return schemaToUser(*schema), nil
}

// GetUser retrieves an active user by ID
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("uuid = ?", userID).
		Where("deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return schemaToUser(schema), nil
}

// ListPublicUsers retrieves every active user with a public profile
func (s *PostgresStore) ListPublicUsers(ctx context.Context) ([]*User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Where("is_public = TRUE").
		Where("deleted_at IS NULL").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public users: %w", err)
	}

	users := make([]*User, len(schemas))
	for i, schema := range schemas {
		users[i] = schemaToUser(schema)
	}
	return users, nil
}

// UpdateProfile applies a partial profile update and returns the new row
func (s *PostgresStore) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*User, error) {
	query := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("uuid = ?", userID).
		Where("deleted_at IS NULL").
		Set("updated_at = ?", time.Now())

	if req.Name != nil {
		query = query.Set("name = ?", *req.Name)
	}
	if req.Location != nil {
		query = query.Set("location = ?", *req.Location)
	}
	if req.ProfilePhotoURL != nil {
		query = query.Set("profile_photo_url = ?", *req.ProfilePhotoURL)
	}
	if req.Availability != nil {
		query = query.Set("availability = ?", pgdialect.Array(*req.Availability))
	}
	if req.IsPublic != nil {
		query = query.Set("is_public = ?", *req.IsPublic)
	}

	result, err := query.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}

	return s.GetUser(ctx, userID)
}

// UpdateKarma stores the latest computed karma and level for a user
func (s *PostgresStore) UpdateKarma(ctx context.Context, userID string, karma, level int) error {
	_, err := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("uuid = ?", userID).
		Where("deleted_at IS NULL").
		Set("karma = ?", karma).
		Set("level = ?", level).
		Set("updated_at = ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update karma: %w", err)
	}
	return nil
}

// DeleteUser soft-deletes a user
func (s *PostgresStore) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	now := time.Now()
	_, err := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("uuid = ?", userID).
		Where("deleted_at IS NULL").
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// Helper conversion functions

func schemaToUser(schema UserSchema) *User {
	id, _ := uuid.Parse(schema.UUID)
	user := &User{
		UUID:              id,
		Email:             schema.Email,
		Availability:      schema.Availability,
		IsPublic:          schema.IsPublic,
		Rating:            schema.Rating,
		SessionsCompleted: schema.SessionsCompleted,
		ResponseTimeHours: schema.ResponseTimeHours,
		Karma:             schema.Karma,
		Level:             schema.Level,
		CreatedAt:         schema.CreatedAt,
		UpdatedAt:         schema.UpdatedAt,
		DeletedAt:         schema.DeletedAt,
	}

	if user.Availability == nil {
		user.Availability = []string{}
	}
	if schema.Name != nil {
		user.Name = *schema.Name
	}
	if schema.Location != nil {
		user.Location = *schema.Location
	}
	if schema.ProfilePhotoURL != nil {
		user.ProfilePhotoURL = *schema.ProfilePhotoURL
	}

	return user
}
