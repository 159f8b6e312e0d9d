package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"User", User, false},
		{"Artisan", Artisan, false},
		{"Admin", Admin, false},
		{"user", "", true},
		{"admin", "", true},
		{"", "", true},
		{"Superuser", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanCloseOrder(t *testing.T) {
	assert.True(t, User.CanCloseOrder())
	assert.True(t, Admin.CanCloseOrder())
	assert.False(t, Artisan.CanCloseOrder())
	assert.False(t, Role("Ghost").CanCloseOrder())
}

func TestCanManageAccounts(t *testing.T) {
	assert.True(t, Admin.CanManageAccounts())
	assert.False(t, User.CanManageAccounts())
	assert.False(t, Artisan.CanManageAccounts())
}

func TestAllRolesAreValid(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.IsValid(), r)
	}
}
