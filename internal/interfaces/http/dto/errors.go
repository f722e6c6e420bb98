package dto

import (
	"net/http"
	"strings"
)

// Common error codes produced by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// ALREADY_FINALIZED is a 400: retrying a finalize is a client mistake, not a
// conflict the client can resolve.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInternal:     http.StatusInternalServerError,

	"ITEM_NOT_FOUND":       http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"ADMIN_OVERRIDE_REQUIRED": http.StatusForbidden,

	"ALREADY_FINALIZED": http.StatusBadRequest,

	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"NO_ITEMS":          http.StatusUnprocessableEntity,
	"OVERPAYMENT":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_GOLD": http.StatusUnprocessableEntity,
	"MISSING_ACCOUNT":   http.StatusUnprocessableEntity,
	"MISSING_PARTY":     http.StatusUnprocessableEntity,
	"ALREADY_LOCKED":    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped INVALID_* codes are input validation failures; anything else
// unmapped is treated as internal.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
