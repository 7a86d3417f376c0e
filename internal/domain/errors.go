package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Verification pipeline errors
	CodeInvalidIdentifier     ErrorCode = "INVALID_IDENTIFIER"
	CodeAcquisitionFailure    ErrorCode = "ACQUISITION_FAILURE"
	CodeClassificationFailure ErrorCode = "CLASSIFICATION_FAILURE"
	CodeQuizUnavailable       ErrorCode = "QUIZ_UNAVAILABLE"
)

// Operator-facing banners.
const (
	MsgInvalidURL            = "Invalid YouTube URL. Please check the link."
	MsgAcquisitionFailed     = "Analysis Failed: No English Transcript found."
	MsgPastedTooShort        = "Analysis Failed: Pasted transcript is too short."
	MsgClassificationFailed  = "Analysis Failed: AI Error."
	MsgQuizUnavailable       = "Quiz data corrupted or missing."
	MsgVideoNotFound         = "Video not found in Library."
	MsgEmptyState            = "Paste a YouTube link to begin."
	MsgLibraryHit            = "Video found in Library. Loading Quiz..."
	MsgVerifiedAndArchived   = "Verified & Archived"
	MsgAccessGranted         = "Access Granted. You may now comment."
	msgVerificationFailedFmt = "Verification Failed. Score: %d/%d. Rewatch the video."
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON hides the cause; it is logged, never sent to clients.
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"details,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a detail that is safe to expose to clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewInvalidIdentifierError() *DomainError {
	return NewError(CodeInvalidIdentifier, MsgInvalidURL, nil)
}

func NewAcquisitionFailureError(cause error) *DomainError {
	return NewError(CodeAcquisitionFailure, MsgAcquisitionFailed, cause)
}

func NewClassificationFailureError(cause error) *DomainError {
	return NewError(CodeClassificationFailure, MsgClassificationFailed, cause)
}

func NewQuizUnavailableError(videoID string, cause error) *DomainError {
	return NewError(CodeQuizUnavailable, MsgQuizUnavailable, cause).WithContext("video_id", videoID)
}

// HasCode reports whether err is a DomainError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned by request validation and rendered as a 400.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: "field has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("field must be between %d and %d", min, max),
		Value:   value,
	}
}
