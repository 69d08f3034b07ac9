package extract

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why an extraction aborted.
type ErrorCode string

const (
	ErrPasswordRequired      ErrorCode = "PASSWORD_REQUIRED"
	ErrInvalidPassword       ErrorCode = "INVALID_PASSWORD"
	ErrDecryptionUnsupported ErrorCode = "DECRYPTION_UNSUPPORTED"
	ErrInvalidDocument       ErrorCode = "INVALID_DOCUMENT"
)

// ExtractError is a structured error for pipeline failures. The three
// decryption codes are the only user-facing failure modes; everything else
// surfaces as ErrInvalidDocument.
type ExtractError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an
// ExtractError.
func CodeOf(err error) ErrorCode {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
