package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndComparePassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("s3cure-pass"))
	assert.NotEqual(t, "s3cure-pass", user.PasswordHash)

	assert.True(t, user.ComparePassword("s3cure-pass"))
	assert.False(t, user.ComparePassword("wrong-pass"))
	assert.False(t, user.ComparePassword(""))
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("another-pass")
	require.NoError(t, err)

	user := &User{PasswordHash: hashed}
	assert.True(t, user.ComparePassword("another-pass"))
}

func TestFullName(t *testing.T) {
	user := &User{FirstName: "Ravi", LastName: "Kumar"}
	assert.Equal(t, "Ravi Kumar", user.FullName())

	assert.Equal(t, "Ravi", (&User{FirstName: "Ravi"}).FullName())
	assert.Equal(t, "Kumar", (&User{LastName: "Kumar"}).FullName())
	assert.Equal(t, "", (&User{}).FullName())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleCitizen))
	assert.True(t, ValidRole(RoleOfficer))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Citizen"))
}
