package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillswap/skillswap/internal/skills"
)

// ServiceImpl implements the UserService interface
type ServiceImpl struct {
	store       UserStore
	skillSource SkillSource
}

// NewService creates a new user service instance
func NewService(store UserStore, skillSource SkillSource) *ServiceImpl {
	return &ServiceImpl{
		store:       store,
		skillSource: skillSource,
	}
}

// Create creates a new user record
func (s *ServiceImpl) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	return s.store.CreateUser(ctx, req)
}

// Get retrieves a user by ID
func (s *ServiceImpl) Get(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	return s.store.GetUser(ctx, userID)
}

// GetProfile retrieves a user with their skill lists embedded
func (s *ServiceImpl) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

// BrowseProfiles retrieves public profiles with embedded skills. When
// skillFilter is non-empty only profiles whose skill names contain the
// filter (case-insensitive) are returned.
func (s *ServiceImpl) BrowseProfiles(ctx context.Context, skillFilter string) ([]*Profile, error) {
	publicUsers, err := s.store.ListPublicUsers(ctx)
	if err != nil {
		return nil, err
	}

	filter := strings.ToLower(strings.TrimSpace(skillFilter))

	profiles := make([]*Profile, 0, len(publicUsers))
	for _, user := range publicUsers {
		profile, err := s.buildProfile(ctx, user)
		if err != nil {
			return nil, err
		}
		if filter != "" && !profileMatchesSkill(profile, filter) {
			continue
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// UpdateProfile applies a partial profile update. Only the owner may update
// their own profile.
func (s *ServiceImpl) UpdateProfile(ctx context.Context, actorID, userID string, req *UpdateProfileRequest) (*User, error) {
	if actorID == "" {
		return nil, fmt.Errorf("actorID is required")
	}
	if actorID != userID {
		return nil, fmt.Errorf("profile %s does not belong to actor %s", userID, actorID)
	}
	return s.store.UpdateProfile(ctx, userID, req)
}

// RecordKarma caches the latest computed karma and level on the user row
func (s *ServiceImpl) RecordKarma(ctx context.Context, userID string, karma, level int) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	return s.store.UpdateKarma(ctx, userID, karma, level)
}

func (s *ServiceImpl) buildProfile(ctx context.Context, user *User) (*Profile, error) {
	skillRows, err := s.skillSource.ListSkills(ctx, user.UUID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load skills for user %s: %w", user.UUID, err)
	}

	profile := &Profile{
		User:          user,
		SkillsOffered: []*skills.Skill{},
		SkillsWanted:  []*skills.Skill{},
	}
	for _, row := range skillRows {
		switch row.Kind {
		case skills.KindOffered:
			profile.SkillsOffered = append(profile.SkillsOffered, row)
		case skills.KindWanted:
			profile.SkillsWanted = append(profile.SkillsWanted, row)
		}
	}

	return profile, nil
}

func profileMatchesSkill(profile *Profile, filter string) bool {
	for _, skill := range profile.SkillsOffered {
		if strings.Contains(strings.ToLower(skill.SkillName), filter) {
			return true
		}
	}
	for _, skill := range profile.SkillsWanted {
		if strings.Contains(strings.ToLower(skill.SkillName), filter) {
			return true
		}
	}
	return false
}
