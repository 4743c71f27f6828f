package catalog

import (
	"context"
	"errors"
)

var (
	ErrLoadAborted  = errors.New("product load aborted")
	ErrSourcePanic  = errors.New("product source panicked")
	ErrLoadTimedOut = errors.New("product load timed out")
)

const defaultFailureMessage = "failed to fetch products"

func failureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return defaultFailureMessage
	}
	return err.Error()
}

func isAborted(err error) bool {
	return errors.Is(err, ErrLoadAborted)
}

// classify maps a fetch error to the error stored in the state.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return ErrLoadAborted
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrLoadTimedOut
	}
	return err
}
