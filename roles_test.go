package storefront_test

import (
	"testing"

	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
)

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, storefront.RoleUser.IsValid())
	assert.True(t, storefront.RoleAdmin.IsValid())
	assert.False(t, storefront.UserRole("superuser").IsValid())
	assert.False(t, storefront.UserRole("").IsValid())
}

func TestUserRole_IsAdmin(t *testing.T) {
	assert.False(t, storefront.RoleUser.IsAdmin())
	assert.True(t, storefront.RoleAdmin.IsAdmin())
}

func TestUserRole_IsAtLeast(t *testing.T) {
	assert.True(t, storefront.RoleUser.IsAtLeast(storefront.RoleUser))
	assert.False(t, storefront.RoleUser.IsAtLeast(storefront.RoleAdmin))
	assert.True(t, storefront.RoleAdmin.IsAtLeast(storefront.RoleUser))
	assert.True(t, storefront.RoleAdmin.IsAtLeast(storefront.RoleAdmin))

	assert.False(t, storefront.UserRole("ghost").IsAtLeast(storefront.RoleUser))
	assert.False(t, storefront.RoleAdmin.IsAtLeast(storefront.UserRole("ghost")))
}

func TestParseRole(t *testing.T) {
	role, ok := storefront.ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, storefront.RoleAdmin, role)

	_, ok = storefront.ParseRole("nope")
	assert.False(t, ok)
}

func TestGetAllRoles(t *testing.T) {
	roles := storefront.GetAllRoles()
	assert.Equal(t, []storefront.UserRole{storefront.RoleUser, storefront.RoleAdmin}, roles)
}
