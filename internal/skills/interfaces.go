package skills

import (
	"context"
)

// SkillStore defines the interface for skill storage operations
type SkillStore interface {
	AddSkill(ctx context.Context, skill *Skill) error
	RemoveSkill(ctx context.Context, userID, skillID string) error
	ListSkills(ctx context.Context, userID string) ([]*Skill, error)
}

// SkillService defines the interface for skill list operations
type SkillService interface {
	Add(ctx context.Context, actorID string, req *AddSkillRequest) (*Skill, error)
	Remove(ctx context.Context, actorID, skillID string) error
	ListForUser(ctx context.Context, userID string) ([]*Skill, error)
}
