// Package errs holds the error categories shared by every layer.
//
// Use cases declare their own sentinels wrapping one (or two) of these
// categories, so callers can match either the specific error or its class:
//
//	var ErrProposalNotFound = fmt.Errorf("%w: proposal not found", errs.ErrNotFound)
package errs

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrDecode      = errors.New("decode error")
	ErrPersistence = errors.New("persistence error")
	ErrForbidden   = errors.New("forbidden")
)

// Category returns the category sentinel err belongs to, or nil when err is
// not classified.
func Category(err error) error {
	for _, c := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrForbidden, ErrDecode, ErrPersistence} {
		if errors.Is(err, c) {
			return c
		}
	}
	return nil
}
