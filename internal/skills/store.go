package skills

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SkillSchema represents the skills table schema. Offered and wanted rows
// share the table, discriminated by kind.
type SkillSchema struct {
	bun.BaseModel `bun:"table:skills,alias:sk"`

	UUID      string    `bun:"uuid,pk,type:uuid,default:gen_random_uuid()" json:"uuid"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	SkillName string    `bun:"skill_name,notnull" json:"skill_name"`
	Kind      string    `bun:"kind,notnull" json:"kind"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// SkillIndexes enforce per-user uniqueness of a skill name within a kind
var SkillIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_skills_user_name_kind ON skills (user_id, lower(skill_name), kind)",
	"CREATE INDEX IF NOT EXISTS idx_skills_user ON skills (user_id)",
}

// ErrDuplicateSkill reports a (user, skill name) pair that already exists
type ErrDuplicateSkill struct {
	UserID    string
	SkillName string
}

func (e *ErrDuplicateSkill) Error() string {
	return fmt.Sprintf("skill %q is already on the list for user %s", e.SkillName, e.UserID)
}

// PostgresStore implements SkillStore with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL skill store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// AddSkill inserts a skill row for a user
func (s *PostgresStore) AddSkill(ctx context.Context, skill *Skill) error {
	schema := &SkillSchema{
		UUID:      skill.UUID.String(),
		UserID:    skill.UserID,
		SkillName: skill.SkillName,
		Kind:      string(skill.Kind),
		CreatedAt: skill.CreatedAt,
	}

	_, err := s.db.NewInsert().
		Model(schema).
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "idx_skills_user_name_kind") {
			return &ErrDuplicateSkill{UserID: skill.UserID, SkillName: skill.SkillName}
		}
		return fmt.Errorf("failed to add skill: %w", err)
	}

	return nil
}

// RemoveSkill deletes a skill row owned by the user
func (s *PostgresStore) RemoveSkill(ctx context.Context, userID, skillID string) error {
	result, err := s.db.NewDelete().
		Model((*SkillSchema)(nil)).
		Where("uuid = ?", skillID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove skill: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("skill %s not found for user %s", skillID, userID)
	}

	return nil
}

// ListSkills retrieves all skill rows for a user, offered and wanted
func (s *PostgresStore) ListSkills(ctx context.Context, userID string) ([]*Skill, error) {
	var schemas []SkillSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	skills := make([]*Skill, len(schemas))
	for i, schema := range schemas {
		skills[i] = schemaToSkill(schema)
	}
	return skills, nil
}

func schemaToSkill(schema SkillSchema) *Skill {
	id, _ := uuid.Parse(schema.UUID)
	return &Skill{
		UUID:      id,
		UserID:    schema.UserID,
		SkillName: schema.SkillName,
		Kind:      Kind(schema.Kind),
		CreatedAt: schema.CreatedAt,
	}
}
