package storefront

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() int64
	Username() string
	Email() string
	Role() UserRole
}

// Config holds auth options shared by every service
type Config interface {
	GetSigningKey() string
	GetContextKey() string
	// GetTokenExpiration is the token validity window in minutes.
	GetTokenExpiration() int
	GetTokenLookup() string
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
}

// IdentityProvider ensures we have a store to retrieve auth identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// TokenService mints and validates identity tokens
type TokenService interface {
	Generate(identity Identity) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// TokenValidator validates raw tokens, e.g. inside the request guard
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// DefaultLogger returns a stdout logger tagged with the given name. It is the
// fallback for components that were not given a real logger.
func DefaultLogger(name string) Logger {
	return defLogger{name: name}
}

type defLogger struct {
	name string
}

func (d defLogger) tag() string {
	if d.name == "" {
		return "STOREFRONT"
	}
	return "STOREFRONT:" + d.name
}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] "+d.tag()+" "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] "+d.tag()+" "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] "+d.tag()+" "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] "+d.tag()+" "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
