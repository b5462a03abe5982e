package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/tracker/internal/tracker/store"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrStorage            = errors.New("storage failure")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeErr translates a store failure into the service taxonomy. what names
// the record for NotFound and Duplicate messages. Errors that already carry
// a service sentinel pass through unchanged.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case isServiceErr(err):
		return err
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %s", ErrDuplicate, what)
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}

func isServiceErr(err error) bool {
	for _, sentinel := range []error{
		ErrValidation,
		ErrNotFound,
		ErrDuplicate,
		ErrForbidden,
		ErrStorage,
		ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
