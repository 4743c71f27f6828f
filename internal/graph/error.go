package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront-be/internal/filter"
	"storefront-be/internal/logger"
	"storefront-be/internal/notification"
	"storefront-be/internal/storefront"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var (
	ErrInvalidID         = errors.New("invalid product id")
	ErrInvalidPriceRange = errors.New("price range must be non-negative with min not above max")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
	ErrNegativeDuration  = errors.New("duration must not be negative")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoIntrospection   = errors.New("introspection is not enabled")
)

const (
	codeNotFound   = "NOT_FOUND"
	codeBadInput   = "BAD_USER_INPUT"
	codeInternal   = "INTERNAL_SERVER_ERROR"
	internalErrMsg = "internal server error"
)

func parseProductID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return n, nil
}

// toGQLError attaches path and an error code. Unknown errors are logged and
// their message is hidden from the caller.
func toGQLError(ctx context.Context, err error, path ast.Path) *gqlerror.Error {
	code := errorCode(err)
	msg := err.Error()
	if code == codeInternal {
		logger.FromCtx(ctx).Error("unhandled resolver error",
			zap.String("path", path.String()),
			zap.Error(err),
		)
		msg = internalErrMsg
	}
	return &gqlerror.Error{
		Err:        err,
		Message:    msg,
		Path:       path,
		Extensions: map[string]any{"code": code},
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, storefront.ErrProductNotFound):
		return codeNotFound
	case errors.Is(err, storefront.ErrSizeRequired),
		errors.Is(err, storefront.ErrSizeUnavailable),
		errors.Is(err, filter.ErrUnknownSortOption),
		errors.Is(err, notification.ErrUnknownType),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidPriceRange),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrNegativeDuration),
		errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrNoIntrospection):
		return codeBadInput
	}
	return codeInternal
}
