package storefront

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured JWT claims with role checking
type AuthClaims interface {
	Subject() string
	UserID() int64
	Email() string
	Role() string
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       int64  `json:"uid,omitempty"`
	UserEmail string `json:"email,omitempty"`
	UserRole  string `json:"role,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID, falling back to the subject claim
func (c *JWTClaims) UserID() int64 {
	if c.UID != 0 {
		return c.UID
	}
	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Email returns the account email carried by the token
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Role returns the global role
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// HasRole checks if the user has a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// IsAtLeast checks if the user's role is at least the minimum required role
func (c *JWTClaims) IsAtLeast(minRole string) bool {
	return UserRole(c.UserRole).IsAtLeast(UserRole(minRole))
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// Principal is the authenticated identity attached to a request after the
// guard has validated its credential.
type Principal struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

// PrincipalFromClaims derives the request principal from validated claims.
func PrincipalFromClaims(claims AuthClaims) Principal {
	return Principal{
		ID:    claims.UserID(),
		Email: claims.Email(),
		Role:  UserRole(claims.Role()),
	}
}
