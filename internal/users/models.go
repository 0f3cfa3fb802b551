package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap/internal/skills"
)

// User represents a marketplace member
type User struct {
	UUID            uuid.UUID  `json:"uuid"`
	Email           string     `json:"email"`
	Name            string     `json:"name,omitempty"`
	Location        string     `json:"location,omitempty"`
	ProfilePhotoURL string     `json:"profile_photo_url,omitempty"`
	Availability    []string   `json:"availability"`
	IsPublic        bool       `json:"is_public"`

	// Performance metrics read by the reputation engine. Rating and
	// response time are mutated by exchange completion events.
	Rating            float64 `json:"rating"`
	SessionsCompleted int     `json:"sessions_completed"`
	ResponseTimeHours float64 `json:"response_time_hours"`

	// Last computed karma and level, cached for display.
	Karma int `json:"karma"`
	Level int `json:"level"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Profile is a user together with their embedded skill lists
type Profile struct {
	User          *User           `json:"user"`
	SkillsOffered []*skills.Skill `json:"skills_offered"`
	SkillsWanted  []*skills.Skill `json:"skills_wanted"`
}

// CreateUserRequest represents the request to create a user record
type CreateUserRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil pointers
// leave the stored value unchanged.
type UpdateProfileRequest struct {
	Name            *string   `json:"name,omitempty"`
	Location        *string   `json:"location,omitempty"`
	ProfilePhotoURL *string   `json:"profile_photo_url,omitempty"`
	Availability    *[]string `json:"availability,omitempty"`
	IsPublic        *bool     `json:"is_public,omitempty"`
}
