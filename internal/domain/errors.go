package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// DenialError is a business or authorization denial carrying the
// human-readable reason that the error code resolver maps to a status.
// Anything else bubbling out of a service is an internal error.
type DenialError struct {
	Reason string
}

func (e *DenialError) Error() string {
	if e == nil {
		return ""
	}
	return e.Reason
}

func Denial(reason string) error {
	return &DenialError{Reason: reason}
}

func AsDenial(err error) (*DenialError, bool) {
	var denial *DenialError
	if errors.As(err, &denial) {
		return denial, true
	}
	return nil, false
}
