package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Courier error codes. These let the client tell a missing integration from
// an upstream rejection or a credential problem.
const (
	// ErrCodeCourierNotConfigured is used when provider credentials are absent
	ErrCodeCourierNotConfigured = "ERR_COURIER_NOT_CONFIGURED"
	// ErrCodeCourierAuthFailed is used when provider credentials are invalid
	ErrCodeCourierAuthFailed = "ERR_COURIER_AUTH_FAILED"
	// ErrCodeCourierRejected is used when the provider rejects the shipment
	ErrCodeCourierRejected = "ERR_COURIER_REJECTED"
	// ErrCodeCourierUnavailable is used when the provider cannot be reached
	ErrCodeCourierUnavailable = "ERR_COURIER_UNAVAILABLE"
	// ErrCodeCourierUnknown is used when no provider matches the request
	ErrCodeCourierUnknown = "ERR_COURIER_UNKNOWN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,

	ErrCodeCourierNotConfigured: http.StatusPreconditionFailed,
	ErrCodeCourierAuthFailed:    http.StatusBadGateway,
	ErrCodeCourierRejected:      http.StatusUnprocessableEntity,
	ErrCodeCourierUnavailable:   http.StatusBadGateway,
	ErrCodeCourierUnknown:       http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
