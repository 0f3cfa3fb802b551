package swaps

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SwapRequestSchema represents the swap_requests table schema
type SwapRequestSchema struct {
	bun.BaseModel `bun:"table:swap_requests,alias:sr"`

	UUID           string    `bun:"uuid,pk,type:uuid,default:gen_random_uuid()" json:"uuid"`
	FromUserID     string    `bun:"from_user_id,notnull" json:"from_user_id"`
	ToUserID       string    `bun:"to_user_id,notnull" json:"to_user_id"`
	OfferedSkill   string    `bun:"offered_skill,notnull" json:"offered_skill"`
	RequestedSkill string    `bun:"requested_skill,notnull" json:"requested_skill"`
	Status         string    `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// SwapRequestIndexes are created after the table exists
var SwapRequestIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_swap_requests_from_user ON swap_requests (from_user_id)",
	"CREATE INDEX IF NOT EXISTS idx_swap_requests_to_user ON swap_requests (to_user_id)",
	"CREATE INDEX IF NOT EXISTS idx_swap_requests_status ON swap_requests (status)",
}

// PostgresStore implements SwapStore with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL swap store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// CreateSwapRequest inserts a new pending swap request
func (s *PostgresStore) CreateSwapRequest(ctx context.Context, swap *SwapRequest) error {
	schema := swapToSchema(swap)

	_, err := s.db.NewInsert().
		Model(schema).
		Exec(ctx)
	if err != nil {
		return NewStorageError("insert swap_requests", err)
	}

	return nil
}

// GetSwapRequest retrieves a swap request by ID
func (s *PostgresStore) GetSwapRequest(ctx context.Context, swapID string) (*SwapRequest, error) {
	var schema SwapRequestSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("uuid = ?", swapID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFoundError(swapID)
		}
		return nil, NewStorageError("select swap_requests", err)
	}

	return schemaToSwap(schema), nil
}

// ListSwapRequestsForUser retrieves every request the user participates in,
// incoming and outgoing, newest first
func (s *PostgresStore) ListSwapRequestsForUser(ctx context.Context, userID string) ([]*SwapRequest, error) {
	var schemas []SwapRequestSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, NewStorageError("select swap_requests", err)
	}

	swaps := make([]*SwapRequest, len(schemas))
	for i, schema := range schemas {
		swaps[i] = schemaToSwap(schema)
	}
	return swaps, nil
}

// UpdateStatus moves a pending request to the given status. The pending guard
// makes concurrent transitions last-write-wins: the loser sees zero rows
// affected and the already-terminal state stays authoritative.
func (s *PostgresStore) UpdateStatus(ctx context.Context, swapID string, status Status) (bool, error) {
	result, err := s.db.NewUpdate().
		Model((*SwapRequestSchema)(nil)).
		Where("uuid = ?", swapID).
		Where("status = ?", string(StatusPending)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return false, NewStorageError("update swap_requests", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, NewStorageError("update swap_requests", err)
	}

	return rowsAffected > 0, nil
}

// Helper conversion functions

func parseUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

func schemaToSwap(schema SwapRequestSchema) *SwapRequest {
	return &SwapRequest{
		UUID:           parseUUID(schema.UUID),
		FromUserID:     schema.FromUserID,
		ToUserID:       schema.ToUserID,
		OfferedSkill:   schema.OfferedSkill,
		RequestedSkill: schema.RequestedSkill,
		Status:         Status(schema.Status),
		CreatedAt:      schema.CreatedAt,
		UpdatedAt:      schema.UpdatedAt,
	}
}

func swapToSchema(swap *SwapRequest) *SwapRequestSchema {
	return &SwapRequestSchema{
		UUID:           swap.UUID.String(),
		FromUserID:     swap.FromUserID,
		ToUserID:       swap.ToUserID,
		OfferedSkill:   swap.OfferedSkill,
		RequestedSkill: swap.RequestedSkill,
		Status:         string(swap.Status),
		CreatedAt:      swap.CreatedAt,
		UpdatedAt:      swap.UpdatedAt,
	}
}
