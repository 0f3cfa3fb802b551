package skills

import (
	"time"

	"github.com/google/uuid"
)

// Kind separates the two skill lists a user maintains
type Kind string

const (
	KindOffered Kind = "offered"
	KindWanted  Kind = "wanted"
)

// IsValid reports whether k is a known skill kind
func (k Kind) IsValid() bool {
	return k == KindOffered || k == KindWanted
}

// Skill is one entry on a user's offered or wanted list
type Skill struct {
	UUID      uuid.UUID `json:"uuid"`
	UserID    string    `json:"user_id"`
	SkillName string    `json:"skill_name"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// AddSkillRequest is the payload to add a skill to a user's list
type AddSkillRequest struct {
	SkillName string `json:"skill_name"`
	Kind      Kind   `json:"kind"`
}
