package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap/internal/skills"
)

type fakeUserStore struct {
	users map[string]*User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, req *CreateUserRequest) (*User, error) {
	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &User{
		UUID:         id,
		Email:        req.Email,
		Name:         req.Name,
		Availability: []string{},
		IsPublic:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[req.UserID] = user
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, userID string) (*User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, assert.AnError
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) ListPublicUsers(_ context.Context) ([]*User, error) {
	var result []*User
	for _, user := range f.users {
		if user.IsPublic {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, userID string, req *UpdateProfileRequest) (*User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, assert.AnError
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.ProfilePhotoURL != nil {
		user.ProfilePhotoURL = *req.ProfilePhotoURL
	}
	if req.Availability != nil {
		user.Availability = *req.Availability
	}
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) UpdateKarma(_ context.Context, userID string, karma, level int) error {
	user, ok := f.users[userID]
	if !ok {
		return assert.AnError
	}
	user.Karma = karma
	user.Level = level
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, userID string) error {
	delete(f.users, userID)
	return nil
}

type fakeSkillSource struct {
	skills map[string][]*skills.Skill
}

func (f *fakeSkillSource) ListSkills(_ context.Context, userID string) ([]*skills.Skill, error) {
	return f.skills[userID], nil
}

func (f *fakeSkillSource) add(userID, name string, kind skills.Kind) {
	if f.skills == nil {
		f.skills = make(map[string][]*skills.Skill)
	}
	f.skills[userID] = append(f.skills[userID], &skills.Skill{
		UUID:      uuid.New(),
		UserID:    userID,
		SkillName: name,
		Kind:      kind,
	})
}

func seedUser(t *testing.T, store *fakeUserStore, email string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := store.CreateUser(context.Background(), &CreateUserRequest{UserID: id, Email: email})
	require.NoError(t, err)
	return id
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newFakeUserStore(), &fakeSkillSource{})
	ctx := context.Background()

	_, err := service.Create(ctx, &CreateUserRequest{Email: "a@example.com"})
	assert.Error(t, err)

	_, err = service.Create(ctx, &CreateUserRequest{UserID: uuid.NewString()})
	assert.Error(t, err)
}

func TestGetProfileEmbedsSkills(t *testing.T) {
	store := newFakeUserStore()
	source := &fakeSkillSource{}
	service := NewService(store, source)
	ctx := context.Background()

	id := seedUser(t, store, "alice@example.com")
	source.add(id, "Go", skills.KindOffered)
	source.add(id, "Welding", skills.KindOffered)
	source.add(id, "Photography", skills.KindWanted)

	profile, err := service.GetProfile(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", profile.User.Email)
	assert.Len(t, profile.SkillsOffered, 2)
	assert.Len(t, profile.SkillsWanted, 1)
	assert.Equal(t, "Photography", profile.SkillsWanted[0].SkillName)
}

func TestGetProfileWithoutSkills(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, &fakeSkillSource{})

	id := seedUser(t, store, "alice@example.com")

	profile, err := service.GetProfile(context.Background(), id)
	require.NoError(t, err)

	// Empty lists serialize as [] rather than null.
	assert.NotNil(t, profile.SkillsOffered)
	assert.NotNil(t, profile.SkillsWanted)
	assert.Empty(t, profile.SkillsOffered)
}

func TestBrowseProfilesSkillFilter(t *testing.T) {
	store := newFakeUserStore()
	source := &fakeSkillSource{}
	service := NewService(store, source)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")
	seedUser(t, store, "carol@example.com")

	source.add(alice, "Go Programming", skills.KindOffered)
	source.add(bob, "Photography", skills.KindWanted)

	all, err := service.BrowseProfiles(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := service.BrowseProfiles(ctx, "go prog")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, alice, matched[0].User.UUID.String())

	// Wanted skills match the filter too.
	matched, err = service.BrowseProfiles(ctx, "PHOTO")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, bob, matched[0].User.UUID.String())

	matched, err = service.BrowseProfiles(ctx, "juggling")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestBrowseProfilesExcludesPrivateUsers(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, &fakeSkillSource{})
	ctx := context.Background()

	visible := seedUser(t, store, "alice@example.com")
	hidden := seedUser(t, store, "bob@example.com")
	store.users[hidden].IsPublic = false

	profiles, err := service.BrowseProfiles(ctx, "")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, visible, profiles[0].User.UUID.String())
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, &fakeSkillSource{})
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")

	name := "Mallory"
	_, err := service.UpdateProfile(ctx, bob, alice, &UpdateProfileRequest{Name: &name})
	assert.Error(t, err)

	_, err = service.UpdateProfile(ctx, "", alice, &UpdateProfileRequest{Name: &name})
	assert.Error(t, err)

	current, err := service.Get(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, current.Name)
}

func TestUpdateProfilePartial(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, &fakeSkillSource{})
	ctx := context.Background()

	id := seedUser(t, store, "alice@example.com")

	location := "Lisbon"
	availability := []string{"weekends", "evenings"}
	updated, err := service.UpdateProfile(ctx, id, id, &UpdateProfileRequest{
		Location:     &location,
		Availability: &availability,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", updated.Location)
	assert.Equal(t, availability, updated.Availability)
	assert.Equal(t, "alice@example.com", updated.Email, "untouched fields persist")
	assert.True(t, updated.IsPublic)
}

func TestRecordKarma(t *testing.T) {
	store := newFakeUserStore()
	service := NewService(store, &fakeSkillSource{})
	ctx := context.Background()

	id := seedUser(t, store, "alice@example.com")

	require.NoError(t, service.RecordKarma(ctx, id, 640, 7))

	user, err := service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 640, user.Karma)
	assert.Equal(t, 7, user.Level)

	assert.Error(t, service.RecordKarma(ctx, "", 10, 1))
}
