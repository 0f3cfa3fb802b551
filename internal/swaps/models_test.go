package swaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusCancelled, false},
		{StatusRejected, StatusAccepted, false},
		{StatusCancelled, StatusAccepted, false},
		{StatusPending, Status("finished"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusAccepted.IsValid())
	assert.True(t, StatusRejected.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("in-progress").IsValid())
	assert.False(t, Status("").IsValid())
}
