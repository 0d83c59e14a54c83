package storefront

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeTokenMissing       = "auth_token_missing"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeForbidden          = "authz_forbidden"
	TextCodeRecordNotFound     = "record_not_found"
	TextCodeInvalidQuantity    = "cart_invalid_quantity"
	TextCodeStorageFailure     = "storage_failure"
)

// ErrTokenMissing is returned when a request carries no bearer credential
// or the credential cannot be parsed out of its transport.
var ErrTokenMissing = errors.New("missing or malformed bearer credential", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a credential is past its validity window.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a credential fails signature or
// structural validation.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned on login when the identifier or password
// does not match. Unknown accounts and bad passwords are indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned on role or ownership mismatch.
var ErrForbidden = errors.New("forbidden", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrRecordNotFound is returned when an entity is absent or not owned by the
// requester; the two cases are intentionally indistinguishable to the caller.
var ErrRecordNotFound = errors.New("record not found", errors.CategoryNotFound).
	WithTextCode(TextCodeRecordNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidQuantity is returned when a cart quantity update is zero or
// negative.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidQuantity).
	WithCode(errors.CodeBadRequest)

// ErrStorageFailure wraps datastore errors; the detail stays in the logs and
// the caller sees a generic failure.
var ErrStorageFailure = errors.New("storage operation failed", errors.CategoryInternal).
	WithTextCode(TextCodeStorageFailure).
	WithCode(errors.CodeInternal)

// WrapStorage converts a raw datastore error into the opaque storage failure,
// keeping the cause in the chain for logging.
func WrapStorage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.CategoryInternal, msg).
		WithTextCode(TextCodeStorageFailure)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed")
}
