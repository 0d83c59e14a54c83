package storefront_test

import (
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		err      *goerrors.Error
		category goerrors.Category
		textCode string
	}{
		{storefront.ErrTokenMissing, goerrors.CategoryAuth, storefront.TextCodeTokenMissing},
		{storefront.ErrTokenExpired, goerrors.CategoryAuth, storefront.TextCodeTokenExpired},
		{storefront.ErrTokenMalformed, goerrors.CategoryAuth, storefront.TextCodeTokenMalformed},
		{storefront.ErrInvalidCredentials, goerrors.CategoryAuth, storefront.TextCodeInvalidCredentials},
		{storefront.ErrForbidden, goerrors.CategoryAuthz, storefront.TextCodeForbidden},
		{storefront.ErrRecordNotFound, goerrors.CategoryNotFound, storefront.TextCodeRecordNotFound},
		{storefront.ErrInvalidQuantity, goerrors.CategoryValidation, storefront.TextCodeInvalidQuantity},
		{storefront.ErrStorageFailure, goerrors.CategoryInternal, storefront.TextCodeStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.textCode, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
		})
	}
}

func TestWrapStorage(t *testing.T) {
	assert.Nil(t, storefront.WrapStorage(nil, "whatever"))

	wrapped := storefront.WrapStorage(fmt.Errorf("connection refused"), "failed to load user")
	var rich *goerrors.Error
	assert.ErrorAs(t, wrapped, &rich)
	assert.Equal(t, goerrors.CategoryInternal, rich.Category)
	assert.Equal(t, storefront.TextCodeStorageFailure, rich.TextCode)
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.False(t, storefront.IsTokenExpiredError(nil))
	assert.True(t, storefront.IsTokenExpiredError(storefront.ErrTokenExpired))
	assert.True(t, storefront.IsTokenExpiredError(fmt.Errorf("jwt: token is expired")))
	assert.False(t, storefront.IsTokenExpiredError(fmt.Errorf("some other error")))
}

func TestIsMalformedError(t *testing.T) {
	assert.False(t, storefront.IsMalformedError(nil))
	assert.True(t, storefront.IsMalformedError(storefront.ErrTokenMalformed))
	assert.True(t, storefront.IsMalformedError(fmt.Errorf("request carried a missing or malformed credential")))
	assert.False(t, storefront.IsMalformedError(fmt.Errorf("some other error")))
}
