package storefront

import (
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RespondError converts an error into the JSON envelope every service uses at
// the request boundary. Rich errors keep their category mapping; anything
// else is reported as an opaque storage failure without internal detail.
func RespondError(ctx router.Context, err error) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ctx.JSON(statusFromError(rich), map[string]any{
			"error": rich.Message,
			"code":  rich.TextCode,
		})
	}

	return ctx.JSON(router.StatusInternalServerError, map[string]any{
		"error": ErrStorageFailure.Message,
		"code":  ErrStorageFailure.TextCode,
	})
}

// ParseIDParam reads a positive numeric route parameter.
func ParseIDParam(ctx router.Context, name string) (int64, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, goerrors.New("invalid "+name+" parameter", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{name: raw})
	}

	return id, nil
}

func statusFromError(err *goerrors.Error) int {
	switch err.Category {
	case goerrors.CategoryAuth:
		return router.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return router.StatusForbidden
	case goerrors.CategoryNotFound:
		return router.StatusNotFound
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return router.StatusBadRequest
	case goerrors.CategoryConflict:
		return router.StatusConflict
	default:
		return router.StatusInternalServerError
	}
}
