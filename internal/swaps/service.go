package swaps

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceImpl implements the SwapService interface. All transition rules
// live here; the store only persists.
type ServiceImpl struct {
	store SwapStore
}

// NewService creates a new swap lifecycle service
func NewService(store SwapStore) *ServiceImpl {
	return &ServiceImpl{
		store: store,
	}
}

// Create opens a new pending swap request from actorID to req.ToUserID.
// Both skill selections must be non-empty and a user cannot request a swap
// with themselves.
func (s *ServiceImpl) Create(ctx context.Context, actorID string, req *CreateSwapRequest) (*SwapRequest, error) {
	if actorID == "" {
		return nil, NewNotAuthenticatedError()
	}
	if strings.TrimSpace(req.OfferedSkill) == "" {
		return nil, NewValidationError("offered skill selection is required")
	}
	if strings.TrimSpace(req.RequestedSkill) == "" {
		return nil, NewValidationError("requested skill selection is required")
	}
	if req.ToUserID == "" {
		return nil, NewValidationError("recipient is required")
	}
	if req.ToUserID == actorID {
		return nil, NewValidationError("cannot request a swap with yourself")
	}

	now := time.Now()
	swap := &SwapRequest{
		UUID:           uuid.New(),
		FromUserID:     actorID,
		ToUserID:       req.ToUserID,
		OfferedSkill:   strings.TrimSpace(req.OfferedSkill),
		RequestedSkill: strings.TrimSpace(req.RequestedSkill),
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.CreateSwapRequest(ctx, swap); err != nil {
		return nil, err
	}

	return swap, nil
}

// Accept moves a pending request to accepted. Only the recipient may accept.
func (s *ServiceImpl) Accept(ctx context.Context, actorID, swapID string) (*SwapRequest, error) {
	return s.transition(ctx, actorID, swapID, StatusAccepted)
}

// Reject moves a pending request to rejected. Only the recipient may reject.
func (s *ServiceImpl) Reject(ctx context.Context, actorID, swapID string) (*SwapRequest, error) {
	return s.transition(ctx, actorID, swapID, StatusRejected)
}

// Cancel moves a pending request to cancelled. Only the initiator may cancel.
func (s *ServiceImpl) Cancel(ctx context.Context, actorID, swapID string) (*SwapRequest, error) {
	return s.transition(ctx, actorID, swapID, StatusCancelled)
}

// ListForUser returns every request the actor participates in
func (s *ServiceImpl) ListForUser(ctx context.Context, actorID string) ([]*SwapRequest, error) {
	if actorID == "" {
		return nil, NewNotAuthenticatedError()
	}
	return s.store.ListSwapRequestsForUser(ctx, actorID)
}

// Get retrieves a single swap request
func (s *ServiceImpl) Get(ctx context.Context, swapID string) (*SwapRequest, error) {
	return s.store.GetSwapRequest(ctx, swapID)
}

// authorizedActor returns the participant permitted to perform the given
// transition: the recipient for accept/reject, the initiator for cancel.
func authorizedActor(swap *SwapRequest, target Status) string {
	if target == StatusCancelled {
		return swap.FromUserID
	}
	return swap.ToUserID
}

func (s *ServiceImpl) transition(ctx context.Context, actorID, swapID string, target Status) (*SwapRequest, error) {
	if actorID == "" {
		return nil, NewNotAuthenticatedError()
	}
	if swapID == "" {
		return nil, NewValidationError("swap id is required")
	}

	swap, err := s.store.GetSwapRequest(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.Status.CanTransitionTo(target) {
		return nil, NewInvalidTransitionError(swapID, swap.Status, target)
	}
	if authorizedActor(swap, target) != actorID {
		return nil, NewNotAuthorizedError(swapID, actorID, target)
	}

	applied, err := s.store.UpdateStatus(ctx, swapID, target)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost a race: the other participant reached a terminal state first.
		current, err := s.store.GetSwapRequest(ctx, swapID)
		if err != nil {
			return nil, err
		}
		return nil, NewInvalidTransitionError(swapID, current.Status, target)
	}

	swap.Status = target
	swap.UpdatedAt = time.Now()
	return swap, nil
}
