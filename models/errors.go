package models

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// LockConflictError is rendered with the http status code 423
	LockConflictError = errors.New("lock conflict")

	// ErrBpsUnavailable is rendered with the http status code 502
	ErrBpsUnavailable = errors.New("business process system call failed")

	// ErrAntivirusUnavailable never reaches the API: failed scans are reported per attachment
	ErrAntivirusUnavailable = errors.New("antivirus call failed")

	// ErrAuthUnavailable is rendered with the http status code 503
	ErrAuthUnavailable = errors.New("internal authentication token unavailable")
)

// Authentication related errors
var ErrUnknownUser = errors.Wrap(UnAuthorizedError, "unknown user")

// Lock related errors
var (
	ErrCaseNotLocked         = errors.Wrap(LockConflictError, "case is not locked by the current user")
	ErrUnexpectedLockSubject = errors.Wrap(LockConflictError, "lock status returned for an unexpected case")
)

// Payload related errors
var (
	ErrUnexpectedPayload   = errors.Wrap(ErrBpsUnavailable, "unexpected payload")
	ErrUnsupportedFormat   = errors.Wrap(BadParameterError, "format must be either flat or hierarchical")
	ErrMissingBusinessKey  = errors.Wrap(ErrUnexpectedPayload, "business key missing from payload")
	ErrEmptyBpsResponse    = errors.Wrap(ErrBpsUnavailable, "empty response body")
	ErrUnknownFilterConfig = errors.Wrap(BadParameterError, "unknown filter id")
)

// CaseLockedByOtherError is returned when the case is locked by somebody other than the caller.
// It carries the lock owner so that the caller can report who holds the case and since when.
type CaseLockedByOtherError struct {
	CaseviewId string
	LockedBy   string
	LockedAt   null.Time
}

func (e CaseLockedByOtherError) Error() string {
	if e.LockedAt.Valid {
		return fmt.Sprintf("case %s is locked by %s since %s", e.CaseviewId, e.LockedBy,
			e.LockedAt.Time.Format(time.RFC3339))
	}
	return fmt.Sprintf("case %s is locked by %s", e.CaseviewId, e.LockedBy)
}

func (e CaseLockedByOtherError) Is(target error) bool {
	return target == LockConflictError
}

// FieldValidationError maps invalid fields to the rule they broke
type FieldValidationError map[string]string

func (e FieldValidationError) Error() string {
	return fmt.Sprintf("%v", map[string]string(e))
}
