package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeGone         ErrorType = "GONE"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidCountryCode ErrorCode = "INVALID_COUNTRY_CODE"
	ErrCodeInvalidDateRange   ErrorCode = "INVALID_DATE_RANGE"
	ErrCodePartialExternalRef ErrorCode = "PARTIAL_EXTERNAL_REF"
	ErrCodeInvalidDate        ErrorCode = "INVALID_DATE"

	ErrCodeCompanyNotFound       ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeParentCompanyNotFound ErrorCode = "PARENT_COMPANY_NOT_FOUND"
	ErrCodeSiteNotFound          ErrorCode = "SITE_NOT_FOUND"
	ErrCodePersonNotFound        ErrorCode = "PERSON_NOT_FOUND"
	ErrCodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	ErrCodeRoleNotFound          ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeTimeZoneNotFound      ErrorCode = "TIME_ZONE_NOT_FOUND"

	ErrCodeDuplicateCompanyCode ErrorCode = "DUPLICATE_COMPANY_CODE"
	ErrCodeDuplicateExternalRef ErrorCode = "DUPLICATE_EXTERNAL_REF"
	ErrCodeDuplicateUsername    ErrorCode = "DUPLICATE_USERNAME"
	ErrCodeDuplicateRoleName    ErrorCode = "DUPLICATE_ROLE_NAME"
	ErrCodeSystemCompanyExists  ErrorCode = "SYSTEM_COMPANY_EXISTS"
	ErrCodeVersionConflict      ErrorCode = "VERSION_CONFLICT"

	ErrCodeAlreadyDeleted ErrorCode = "ALREADY_DELETED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeUserDisabled       ErrorCode = "USER_DISABLED"
)

// AppError is the single error currency between validators, services and
// the transport layer. Details carries machine-readable context such as
// the entity kind and the offending identifier or field.
type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// WithEntity attaches the entity kind and identifier the error refers to.
func (e *AppError) WithEntity(kind string, id interface{}) *AppError {
	e.Details = map[string]interface{}{
		"entity": kind,
		"id":     fmt.Sprintf("%v", id),
	}
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewGoneError signals operations against a soft-deleted record.
func NewGoneError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeGone,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusGone,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
