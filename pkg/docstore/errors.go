package docstore

import (
	"context"
	"errors"
	"fmt"

	apperrors "stayhub/pkg/errors"
)

// AsAppError translates a persistence failure for the client. Errors that
// are already AppErrors pass through.
func AsAppError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout(fmt.Sprintf("Timed out while trying to %s", operation)).WithCause(err)
	case errors.Is(err, ErrUnavailable):
		return apperrors.StoreUnavailable(operation, err)
	default:
		return apperrors.Internal(fmt.Sprintf("Failed to %s", operation), err)
	}
}
