package swaps

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a swap request
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known lifecycle state
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// The only legal transitions are pending → accepted/rejected/cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsValid() && next != StatusPending
}

// SwapRequest is a bilateral proposal to exchange one participant's offered
// skill for another's
type SwapRequest struct {
	UUID           uuid.UUID `json:"uuid"`
	FromUserID     string    `json:"from_user_id"`
	ToUserID       string    `json:"to_user_id"`
	OfferedSkill   string    `json:"offered_skill"`
	RequestedSkill string    `json:"requested_skill"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateSwapRequest is the payload to open a new swap request
type CreateSwapRequest struct {
	ToUserID       string `json:"to_user_id"`
	OfferedSkill   string `json:"offered_skill"`
	RequestedSkill string `json:"requested_skill"`
}
