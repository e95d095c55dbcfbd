package shared

import (
	"errors"
	"net/http"
)

type ApiErrorType string

const (
	ApiErrorTypeValidation      ApiErrorType = "validation"
	ApiErrorTypePermission      ApiErrorType = "permission"
	ApiErrorTypeNotFound        ApiErrorType = "not_found"
	ApiErrorTypeConflict        ApiErrorType = "conflict"
	ApiErrorTypeInvalidArgument ApiErrorType = "invalid_argument"
	ApiErrorTypeUnauthenticated ApiErrorType = "unauthenticated"
	ApiErrorTypeRateLimited     ApiErrorType = "rate_limited"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`
}

func (e *ApiError) Error() string {
	return e.Msg
}

func ValidationError(msg string) *ApiError {
	return &ApiError{Type: ApiErrorTypeValidation, Status: http.StatusBadRequest, Msg: msg}
}

func PermissionError(msg string) *ApiError {
	return &ApiError{Type: ApiErrorTypePermission, Status: http.StatusForbidden, Msg: msg}
}

func NotFoundError(msg string) *ApiError {
	return &ApiError{Type: ApiErrorTypeNotFound, Status: http.StatusNotFound, Msg: msg}
}

func ConflictError(msg string) *ApiError {
	return &ApiError{Type: ApiErrorTypeConflict, Status: http.StatusConflict, Msg: msg}
}

func InvalidArgumentError(msg string) *ApiError {
	return &ApiError{Type: ApiErrorTypeInvalidArgument, Status: http.StatusBadRequest, Msg: msg}
}

func UnauthenticatedError(msg string) *ApiError {
	return &ApiError{Type: ApiErrorTypeUnauthenticated, Status: http.StatusUnauthorized, Msg: msg}
}

func RateLimitedError(msg string) *ApiError {
	return &ApiError{Type: ApiErrorTypeRateLimited, Status: http.StatusTooManyRequests, Msg: msg}
}

// AsApiError unwraps err looking for an *ApiError.
func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsType reports whether err carries an ApiError of the given type.
func IsType(err error, t ApiErrorType) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Type == t
}
