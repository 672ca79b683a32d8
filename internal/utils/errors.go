package utils

// AppError is the typed error envelope surfaced to callers; Code drives the
// HTTP status mapping.
type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrInvalidInput = "INVALID_INPUT"

	// Query parameter validation errors
	ErrMissingParameter = "MISSING_PARAMETER"
	ErrInvalidSortField = "INVALID_SORT_FIELD"
	ErrInvalidSortOrder = "INVALID_SORT_ORDER"
	ErrInvalidLimit     = "INVALID_LIMIT"

	// Data integrity errors
	ErrCycleDetected      = "CYCLE_DETECTED"
	ErrMalformedTimestamp = "MALFORMED_TIMESTAMP"

	// Authentication errors
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrInvalidToken       = "INVALID_TOKEN"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"

	// Infrastructure errors
	ErrStoreUnavailable = "STORE_UNAVAILABLE"
)

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// Specific error creators for common cases
func NewNotFoundError(what string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: what + " not found",
	}
}

func NewMissingParameterError(param string) *AppError {
	return &AppError{
		Code:    ErrMissingParameter,
		Message: "Missing required parameter: " + param,
	}
}

func NewCycleDetectedError(commentID string) *AppError {
	return &AppError{
		Code:    ErrCycleDetected,
		Message: "Comment graph cycle detected at comment: " + commentID,
	}
}

func NewStoreUnavailableError(originalErr error) *AppError {
	return &AppError{
		Code:    ErrStoreUnavailable,
		Message: "Document store unavailable",
		Origin:  originalErr,
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// Helper method to check if an error is a parameter validation failure
// (client must correct the request, never retried)
func IsValidationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrMissingParameter ||
			appErr.Code == ErrInvalidSortField ||
			appErr.Code == ErrInvalidSortOrder ||
			appErr.Code == ErrInvalidLimit ||
			appErr.Code == ErrInvalidInput
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound:
		return 404 // http.StatusNotFound
	case ErrMissingParameter, ErrInvalidSortField, ErrInvalidSortOrder,
		ErrInvalidLimit, ErrInvalidInput, ErrInvalidCredentials:
		return 400 // http.StatusBadRequest
	case ErrUnauthorized, ErrInvalidToken:
		return 401 // http.StatusUnauthorized
	case ErrDuplicate:
		return 409 // http.StatusConflict
	case ErrStoreUnavailable:
		return 503 // http.StatusServiceUnavailable
	case ErrCycleDetected, ErrMalformedTimestamp:
		return 500 // http.StatusInternalServerError
	default:
		return 500 // http.StatusInternalServerError for unknown errors
	}
}
