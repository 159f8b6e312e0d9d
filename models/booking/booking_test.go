package booking

import (
	"testing"

	"bluecollar/models/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "unknown", State(7).String())
}

func TestStateIsValid(t *testing.T) {
	assert.True(t, StatePending.IsValid())
	assert.True(t, StateCompleted.IsValid())
	assert.False(t, State(-1).IsValid())
	assert.False(t, State(2).IsValid())
}

func TestStateTransitionsAreMonotonic(t *testing.T) {
	assert.True(t, StatePending.CanTransitionTo(StateCompleted))
	assert.False(t, StateCompleted.CanTransitionTo(StatePending))
	assert.False(t, StatePending.CanTransitionTo(StatePending))
	assert.False(t, StateCompleted.CanTransitionTo(StateCompleted))
}

func TestStateGates(t *testing.T) {
	assert.True(t, StatePending.CanClose())
	assert.False(t, StateCompleted.CanClose())

	assert.False(t, StatePending.CanReview())
	assert.True(t, StateCompleted.CanReview())
}

func TestCloseByOwner(t *testing.T) {
	o := Order{BookedBy: "ade", State: StatePending}

	require.NoError(t, o.Close(role.User, "ade"))
	assert.Equal(t, StateCompleted, o.State)
}

func TestCloseByOtherUserRejected(t *testing.T) {
	o := Order{BookedBy: "ade", State: StatePending}

	err := o.Close(role.User, "chi")
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Equal(t, StatePending, o.State)
}

func TestCloseByArtisanRejected(t *testing.T) {
	o := Order{BookedBy: "ade", ArtisanUsername: "bola", State: StatePending}

	err := o.Close(role.Artisan, "bola")
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Equal(t, StatePending, o.State)
}

func TestCloseByAdminOnAnyOrder(t *testing.T) {
	o := Order{BookedBy: "ade", State: StatePending}

	require.NoError(t, o.Close(role.Admin, "admin"))
	assert.Equal(t, StateCompleted, o.State)
}

func TestReCloseRejected(t *testing.T) {
	o := Order{BookedBy: "ade", State: StatePending}
	require.NoError(t, o.Close(role.User, "ade"))

	err := o.Close(role.User, "ade")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, StateCompleted, o.State)
}

func TestReviewable(t *testing.T) {
	tests := []struct {
		name     string
		order    Order
		username string
		want     bool
	}{
		{"completed unreviewed own order", Order{BookedBy: "ade", State: StateCompleted}, "ade", true},
		{"still pending", Order{BookedBy: "ade", State: StatePending}, "ade", false},
		{"already reviewed", Order{BookedBy: "ade", State: StateCompleted, Reviewed: true}, "ade", false},
		{"someone else's order", Order{BookedBy: "ade", State: StateCompleted}, "chi", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.Reviewable(tt.username))
		})
	}
}
