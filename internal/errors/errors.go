package errors

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record is absent from the caller's visible set.
	ErrNotFound = errors.New("record not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWalletNotFound is returned when a wallet is not found.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("operation not allowed")
	// ErrNotOwner is returned when the caller does not own the target record.
	ErrNotOwner = errors.New("you can only access your own records")
	// ErrRoleEscalation is returned when a non-admin tries to grant themselves admin.
	ErrRoleEscalation = errors.New("non-admin users cannot set user_role to admin")
	// ErrUserAlreadyExists is returned when username or email is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrWalletAlreadyExists is returned when the user already has a wallet.
	ErrWalletAlreadyExists = errors.New("user already has a wallet")
	// ErrUserProtected is returned when deleting a user still referenced by transactions.
	ErrUserProtected = errors.New("user is referenced by existing transactions")
	// ErrPriceNotActive is returned when a transaction references an inactive gold price.
	ErrPriceNotActive = errors.New("selected gold price must be active")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// ValidationError is a field-keyed 400 error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error keyed by field name.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
		Field: e.Field,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		httpErr := NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_ERROR")
		httpErr.Field = ve.Field
		return httpErr
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrWalletNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "WALLET_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case errors.Is(err, ErrRoleEscalation):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ROLE_ESCALATION")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrWalletAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "WALLET_ALREADY_EXISTS")
	case errors.Is(err, ErrUserProtected):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_PROTECTED")
	case errors.Is(err, ErrPriceNotActive):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PRICE_NOT_ACTIVE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
