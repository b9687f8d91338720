package metrics

import (
	apperrors "github.com/allisson/blogs/internal/errors"
)

// StatusFromError maps a domain error to a metric status label. Authorization
// rejections are labeled "denied" so guard decisions can be graphed separately
// from infrastructure failures.
func StatusFromError(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case apperrors.Is(err, apperrors.ErrForbidden), apperrors.Is(err, apperrors.ErrUnauthorized):
		return StatusDenied
	case apperrors.Is(err, apperrors.ErrNotFound):
		return StatusNotFound
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return StatusInvalidInput
	default:
		return StatusError
	}
}
