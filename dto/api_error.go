package dto

import "time"

type APIErrorResponse struct {
	Message   string     `json:"message"`
	ErrorCode ErrorCode  `json:"error_code,omitempty"`
	LockedBy  string     `json:"locked_by,omitempty"`
	LockedAt  *time.Time `json:"locked_at,omitempty"`
}

type ErrorCode string

const (
	// lock related
	NotLocked             ErrorCode = "not_locked"
	LockedByOther         ErrorCode = "locked_by_other"
	InvalidLockedResource ErrorCode = "invalid_locked_resource"

	// remote systems
	BpsUnavailable  ErrorCode = "bps_unavailable"
	AuthUnavailable ErrorCode = "internal_auth_unavailable"
)
