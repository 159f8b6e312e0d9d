package auth

import (
	"testing"

	"bluecollar/models/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken("uuid-1", "ade", "ade@example.com", role.User, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "uuid-1", claims["sub"])
	assert.Equal(t, "ade", claims["username"])
	assert.Equal(t, "ade@example.com", claims["email"])
	assert.Equal(t, true, claims["active"])

	r, err := RoleFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, role.User, r)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := IssueToken("uuid-1", "ade", "ade@example.com", role.Admin, true)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestRoleFromClaimsRejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken("uuid-1", "ade", "ade@example.com", role.Artisan, true)
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)

	claims["role"] = "Superuser"
	_, err = RoleFromClaims(claims)
	assert.Error(t, err)

	delete(claims, "role")
	_, err = RoleFromClaims(claims)
	assert.Error(t, err)
}
