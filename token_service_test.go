package storefront_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = mockIdentity{
	id:    42,
	name:  "ada",
	email: "ada@example.com",
	role:  storefront.RoleUser,
}

func newTokenService(expirationMinutes int) storefront.TokenService {
	return storefront.NewTokenService(
		[]byte("test-signing-key"),
		expirationMinutes,
		"storefront",
		jwt.ClaimStrings{"storefront"},
		nil,
	)
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	ts := newTokenService(7)

	token, err := ts.Generate(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject())
	assert.Equal(t, int64(42), claims.UserID())
	assert.Equal(t, "ada@example.com", claims.Email())
	assert.Equal(t, "user", claims.Role())
	assert.True(t, claims.HasRole("user"))
	assert.False(t, claims.HasRole("admin"))
	assert.True(t, claims.IsAtLeast("user"))
	assert.False(t, claims.IsAtLeast("admin"))

	window := claims.Expires().Sub(claims.IssuedAt())
	assert.Equal(t, 7*time.Minute, window)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	ts := newTokenService(-1)

	token, err := ts.Generate(testIdentity)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	require.Error(t, err)
	assert.True(t, storefront.IsTokenExpiredError(err))

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, storefront.TextCodeTokenExpired, rich.TextCode)
}

func TestTokenService_WrongKey(t *testing.T) {
	ts := newTokenService(7)
	other := storefront.NewTokenService([]byte("another-key"), 7, "storefront", jwt.ClaimStrings{"storefront"}, nil)

	token, err := other.Generate(testIdentity)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	require.Error(t, err)
	assert.True(t, storefront.IsMalformedError(err))
}

func TestTokenService_GarbageToken(t *testing.T) {
	ts := newTokenService(7)

	_, err := ts.Validate("not.a.token")
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, goerrors.CategoryAuth, rich.Category)
	assert.Equal(t, storefront.TextCodeTokenMalformed, rich.TextCode)
}

func TestTokenService_AssignsTokenID(t *testing.T) {
	ts := newTokenService(7)

	first, err := ts.Generate(testIdentity)
	require.NoError(t, err)
	second, err := ts.Generate(testIdentity)
	require.NoError(t, err)

	// every token carries a unique jti
	assert.NotEqual(t, first, second)
}
