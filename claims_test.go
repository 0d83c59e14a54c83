package storefront_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
)

func TestJWTClaims_UserID_FallsBackToSubject(t *testing.T) {
	withUID := &storefront.JWTClaims{UID: 42}
	assert.Equal(t, int64(42), withUID.UserID())

	fromSubject := &storefront.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
	}
	assert.Equal(t, int64(7), fromSubject.UserID())

	garbage := &storefront.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"},
	}
	assert.Zero(t, garbage.UserID())
}

func TestJWTClaims_RoleChecks(t *testing.T) {
	claims := &storefront.JWTClaims{UserRole: "user"}

	assert.True(t, claims.HasRole("user"))
	assert.False(t, claims.HasRole("admin"))
	assert.True(t, claims.IsAtLeast("user"))
	assert.False(t, claims.IsAtLeast("admin"))

	admin := &storefront.JWTClaims{UserRole: "admin"}
	assert.True(t, admin.IsAtLeast("user"))
}

func TestPrincipalFromClaims(t *testing.T) {
	claims := &storefront.JWTClaims{
		UID:       42,
		UserEmail: "ada@example.com",
		UserRole:  "admin",
	}

	principal := storefront.PrincipalFromClaims(claims)

	assert.Equal(t, int64(42), principal.ID)
	assert.Equal(t, "ada@example.com", principal.Email)
	assert.Equal(t, storefront.RoleAdmin, principal.Role)
	assert.True(t, principal.IsAdmin())
}
