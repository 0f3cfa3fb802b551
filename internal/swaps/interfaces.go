package swaps

import (
	"context"
)

// SwapStore defines the interface for swap request storage operations
type SwapStore interface {
	CreateSwapRequest(ctx context.Context, swap *SwapRequest) error
	GetSwapRequest(ctx context.Context, swapID string) (*SwapRequest, error)
	ListSwapRequestsForUser(ctx context.Context, userID string) ([]*SwapRequest, error)
	// UpdateStatus persists the new status and refreshed updated_at. The
	// update only applies while the stored status is still pending; it
	// reports false when the request was already terminal.
	UpdateStatus(ctx context.Context, swapID string, status Status) (bool, error)
}

// SwapService defines the interface for swap lifecycle operations
type SwapService interface {
	Create(ctx context.Context, actorID string, req *CreateSwapRequest) (*SwapRequest, error)
	Accept(ctx context.Context, actorID, swapID string) (*SwapRequest, error)
	Reject(ctx context.Context, actorID, swapID string) (*SwapRequest, error)
	Cancel(ctx context.Context, actorID, swapID string) (*SwapRequest, error)
	ListForUser(ctx context.Context, actorID string) ([]*SwapRequest, error)
	Get(ctx context.Context, swapID string) (*SwapRequest, error)
}
