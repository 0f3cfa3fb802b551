package skills

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceImpl implements the SkillService interface
type ServiceImpl struct {
	store SkillStore
}

// NewService creates a new skill service instance
func NewService(store SkillStore) *ServiceImpl {
	return &ServiceImpl{
		store: store,
	}
}

// Add puts a skill on the actor's offered or wanted list
func (s *ServiceImpl) Add(ctx context.Context, actorID string, req *AddSkillRequest) (*Skill, error) {
	if actorID == "" {
		return nil, fmt.Errorf("actorID is required")
	}
	name := strings.TrimSpace(req.SkillName)
	if name == "" {
		return nil, fmt.Errorf("skill_name is required")
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("kind must be %q or %q", KindOffered, KindWanted)
	}

	skill := &Skill{
		UUID:      uuid.New(),
		UserID:    actorID,
		SkillName: name,
		Kind:      req.Kind,
		CreatedAt: time.Now(),
	}

	if err := s.store.AddSkill(ctx, skill); err != nil {
		return nil, err
	}

	return skill, nil
}

// Remove deletes a skill from the actor's list
func (s *ServiceImpl) Remove(ctx context.Context, actorID, skillID string) error {
	if actorID == "" {
		return fmt.Errorf("actorID is required")
	}
	if skillID == "" {
		return fmt.Errorf("skillID is required")
	}
	return s.store.RemoveSkill(ctx, actorID, skillID)
}

// ListForUser retrieves both skill lists for a user
func (s *ServiceImpl) ListForUser(ctx context.Context, userID string) ([]*Skill, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	return s.store.ListSkills(ctx, userID)
}
