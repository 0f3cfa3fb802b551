package users

import (
	"context"

	"github.com/skillswap/skillswap/internal/skills"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	ListPublicUsers(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*User, error)
	UpdateKarma(ctx context.Context, userID string, karma, level int) error
	DeleteUser(ctx context.Context, userID string) error
}

// SkillSource supplies the skill rows embedded into profiles
type SkillSource interface {
	ListSkills(ctx context.Context, userID string) ([]*skills.Skill, error)
}

// UserService defines the interface for profile operations
type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	BrowseProfiles(ctx context.Context, skillFilter string) ([]*Profile, error)
	UpdateProfile(ctx context.Context, actorID, userID string, req *UpdateProfileRequest) (*User, error)
	RecordKarma(ctx context.Context, userID string, karma, level int) error
}
